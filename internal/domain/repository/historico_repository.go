package repository

import (
	"time"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// FiltroHistorico filtros do listado paginado de histórico de acesso.
// Usuario casa por substring (ILIKE); Acao por igualdade.
type FiltroHistorico struct {
	Usuario string
	Acao    string
	Limit   int
	Offset  int
}

// HistoricoRepository define a porta de persistência do histórico de acesso.
type HistoricoRepository interface {
	Create(registro *entity.HistoricoAcesso) error
	List(filtro FiltroHistorico) ([]*entity.HistoricoAcesso, int, error)
	Delete(id string) error
	DeleteAnterioresA(limite time.Time) (int64, error)
}
