package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovimentacaoEntrada = "entrada"
	MovimentacaoSaida   = "saida"
	MovimentacaoAjuste  = "ajuste"
)

// Unidade padrão quando a planilha ou o request não informam uma.
const UnidadePadrao = "unidade"

// Produto representa um item de almoxarifado da obra.
// Codigo é único entre produtos ativos; Estoque só muda via movimentações.
type Produto struct {
	ID              string
	Nome            string
	Categoria       string
	Codigo          string
	Estoque         int
	EstoqueMinimo   int
	Preco           decimal.Decimal
	Unidade         string
	Descricao       string
	Foto            string
	Ativo           bool
	DataCriacao     time.Time
	DataAtualizacao time.Time
}

// ValorTotal retorna Estoque × Preço.
func (p *Produto) ValorTotal() decimal.Decimal {
	return p.Preco.Mul(decimal.NewFromInt(int64(p.Estoque)))
}

// EstoqueBaixo indica se o produto está abaixo do estoque mínimo.
func (p *Produto) EstoqueBaixo() bool {
	return p.Estoque < p.EstoqueMinimo
}

// Movimentacao é um registro imutável do razão de estoque: cada mudança de
// quantidade gera exatamente um registro. Quantidade é sempre o módulo da
// diferença; QuantidadeAtual = QuantidadeAnterior ± Quantidade conforme Tipo.
type Movimentacao struct {
	ID                 string
	ProdutoID          string
	Tipo               string // entrada, saida, ajuste
	Quantidade         int
	QuantidadeAnterior int
	QuantidadeAtual    int
	Motivo             string
	Observacoes        string
	Usuario            string
	DataMovimentacao   time.Time
}
