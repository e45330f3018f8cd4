package importacao

import (
	"fmt"
	"strings"

	"github.com/obratrack/obratrack-api/internal/application/dto"
)

// ErroParse indica arquivo ilegível: nenhuma combinação de codificação e
// delimitador produziu mais de uma coluna, ou o formato não é suportado.
type ErroParse struct {
	Motivo string
}

func (e *ErroParse) Error() string { return e.Motivo }

// ErroColunas indica cabeçalho sem as colunas obrigatórias.
type ErroColunas struct {
	Faltando     []string
	Obrigatorias []string
	Encontradas  []string
}

func (e *ErroColunas) Error() string {
	return fmt.Sprintf("colunas obrigatórias ausentes: %s", strings.Join(e.Faltando, ", "))
}

// ErroValidacao agrega os erros de todas as linhas rejeitadas. Quando presente,
// nenhuma linha foi aplicada.
type ErroValidacao struct {
	Linhas []dto.ErroLinha
}

func (e *ErroValidacao) Error() string { return "erros encontrados na planilha" }

// ErroAplicacao indica falha ao aplicar uma linha já validada (ex.: código
// duplicado por corrida com outra importação). As linhas anteriores já foram
// aplicadas, cada uma na própria transação; Parcial traz o resumo do que
// entrou antes da falha.
type ErroAplicacao struct {
	Linha   int
	Causa   error
	Parcial dto.ImportacaoResponse
}

func (e *ErroAplicacao) Error() string {
	return fmt.Sprintf("falha ao aplicar linha %d: %v", e.Linha, e.Causa)
}

func (e *ErroAplicacao) Unwrap() error { return e.Causa }
