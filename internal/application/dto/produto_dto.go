package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// CreateProdutoRequest entrada para criar um produto.
type CreateProdutoRequest struct {
	Nome          string          `json:"nome"`
	Categoria     string          `json:"categoria"`
	Codigo        string          `json:"codigo"`
	Estoque       int             `json:"estoque"`
	EstoqueMinimo int             `json:"estoqueMinimo"`
	Preco         decimal.Decimal `json:"preco"`
	Unidade       string          `json:"unidade"`
	Descricao     string          `json:"descricao"`
	Usuario       string          `json:"usuario"`
}

// UpdateProdutoRequest entrada para editar um produto. Campos nil mantêm o
// valor atual; Estoque presente e diferente gera movimentação de ajuste.
type UpdateProdutoRequest struct {
	Nome          *string          `json:"nome"`
	Categoria     *string          `json:"categoria"`
	Codigo        *string          `json:"codigo"`
	Estoque       *int             `json:"estoque"`
	EstoqueMinimo *int             `json:"estoque_minimo"`
	Preco         *decimal.Decimal `json:"preco"`
	Unidade       *string          `json:"unidade"`
	Descricao     *string          `json:"descricao"`
	Usuario       string           `json:"usuario"`
}

// DispensarRequest entrada para dispensar (retirar) estoque de um produto.
type DispensarRequest struct {
	Quantidade      int    `json:"quantidade"`
	LocalUso        string `json:"local_uso"`
	Solicitante     string `json:"solicitante"`
	DataDispensacao string `json:"data_dispensacao"` // YYYY-MM-DD, opcional
}

// ProdutoResponse saída de um produto (chaves do frontend original).
type ProdutoResponse struct {
	ID              string          `json:"id"`
	Nome            string          `json:"nome"`
	Categoria       string          `json:"categoria"`
	Codigo          string          `json:"codigo"`
	Estoque         int             `json:"estoque"`
	EstoqueMinimo   int             `json:"estoqueMinimo"`
	Preco           decimal.Decimal `json:"preco"`
	Unidade         string          `json:"unidade"`
	Descricao       string          `json:"descricao"`
	Foto            string          `json:"foto,omitempty"`
	Ativo           bool            `json:"ativo"`
	ValorTotal      decimal.Decimal `json:"valorTotal"`
	DataCriacao     time.Time       `json:"dataCriacao"`
	DataAtualizacao time.Time       `json:"dataAtualizacao"`
}

// ProdutoResumo versão enxuta embutida nas movimentações.
type ProdutoResumo struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Categoria string `json:"categoria"`
	Codigo    string `json:"codigo"`
}

// MovimentacaoResponse saída de uma movimentação de estoque.
type MovimentacaoResponse struct {
	ID                 string         `json:"id"`
	ProdutoID          string         `json:"produtoId"`
	Tipo               string         `json:"tipo"`
	Quantidade         int            `json:"quantidade"`
	QuantidadeAnterior int            `json:"quantidadeAnterior"`
	QuantidadeAtual    int            `json:"quantidadeAtual"`
	Motivo             string         `json:"motivo"`
	Observacoes        string         `json:"observacoes,omitempty"`
	Usuario            string         `json:"usuario"`
	DataMovimentacao   time.Time      `json:"dataMovimentacao"`
	Produto            *ProdutoResumo `json:"produto,omitempty"`
}

// DispensarResponse saída de uma dispensação.
type DispensarResponse struct {
	Message      string               `json:"message"`
	Produto      ProdutoResponse      `json:"produto"`
	Movimentacao MovimentacaoResponse `json:"movimentacao"`
}

// ToProdutoResponse converte a entidade para o DTO de saída.
func ToProdutoResponse(p *entity.Produto) *ProdutoResponse {
	if p == nil {
		return nil
	}
	return &ProdutoResponse{
		ID:              p.ID,
		Nome:            p.Nome,
		Categoria:       p.Categoria,
		Codigo:          p.Codigo,
		Estoque:         p.Estoque,
		EstoqueMinimo:   p.EstoqueMinimo,
		Preco:           p.Preco,
		Unidade:         p.Unidade,
		Descricao:       p.Descricao,
		Foto:            p.Foto,
		Ativo:           p.Ativo,
		ValorTotal:      p.ValorTotal(),
		DataCriacao:     p.DataCriacao,
		DataAtualizacao: p.DataAtualizacao,
	}
}

// ToMovimentacaoResponse converte a entidade para o DTO de saída.
func ToMovimentacaoResponse(m *entity.Movimentacao, produto *entity.Produto) *MovimentacaoResponse {
	if m == nil {
		return nil
	}
	out := &MovimentacaoResponse{
		ID:                 m.ID,
		ProdutoID:          m.ProdutoID,
		Tipo:               m.Tipo,
		Quantidade:         m.Quantidade,
		QuantidadeAnterior: m.QuantidadeAnterior,
		QuantidadeAtual:    m.QuantidadeAtual,
		Motivo:             m.Motivo,
		Observacoes:        m.Observacoes,
		Usuario:            m.Usuario,
		DataMovimentacao:   m.DataMovimentacao,
	}
	if produto != nil {
		out.Produto = &ProdutoResumo{
			ID:        produto.ID,
			Nome:      produto.Nome,
			Categoria: produto.Categoria,
			Codigo:    produto.Codigo,
		}
	}
	return out
}
