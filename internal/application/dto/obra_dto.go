package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// CreateObraRequest entrada para criar uma obra.
type CreateObraRequest struct {
	Nome        string          `json:"nome"`
	Localizacao string          `json:"localizacao"`
	Valor       decimal.Decimal `json:"valor"`
	Status      string          `json:"status"`
	Progresso   int             `json:"progresso"`
	DataInicio  string          `json:"dataInicio"` // YYYY-MM-DD
	Usuario     string          `json:"usuario"`
}

// UpdateObraRequest entrada para editar uma obra (campos nil mantêm o atual).
type UpdateObraRequest struct {
	Nome        *string          `json:"nome"`
	Localizacao *string          `json:"localizacao"`
	Valor       *decimal.Decimal `json:"valor"`
	Status      *string          `json:"status"`
	Progresso   *int             `json:"progresso"`
	DataInicio  *string          `json:"dataInicio"`
}

// ObraResponse saída de uma obra com etapas não deletadas e mobiliário.
type ObraResponse struct {
	ID              string               `json:"id"`
	Nome            string               `json:"nome"`
	Localizacao     string               `json:"localizacao"`
	Valor           decimal.Decimal      `json:"valor"`
	Status          string               `json:"status"`
	Progresso       int                  `json:"progresso"`
	DataInicio      string               `json:"dataInicio"`
	DataCriacao     time.Time            `json:"dataCriacao"`
	DataAtualizacao time.Time            `json:"dataAtualizacao"`
	Etapas          []EtapaResponse      `json:"etapas"`
	Furniture       []MobiliarioResponse `json:"furniture"`
}

// CreateEtapaRequest entrada para criar uma etapa.
type CreateEtapaRequest struct {
	Titulo    string          `json:"titulo"`
	Descricao string          `json:"descricao"`
	DataEtapa string          `json:"dataEtapa"` // YYYY-MM-DD
	Fotos     json.RawMessage `json:"fotos"`     // array de URLs
}

// UpdateEtapaRequest entrada para editar uma etapa.
type UpdateEtapaRequest struct {
	Titulo    *string         `json:"titulo"`
	Descricao *string         `json:"descricao"`
	DataEtapa *string         `json:"dataEtapa"`
	Fotos     json.RawMessage `json:"fotos"`
}

// EtapaResponse saída de uma etapa.
type EtapaResponse struct {
	ID              string          `json:"id"`
	ObraID          string          `json:"obraId"`
	Titulo          string          `json:"titulo"`
	Descricao       string          `json:"descricao"`
	DataEtapa       string          `json:"dataEtapa"`
	Fotos           json.RawMessage `json:"fotos"`
	Deletado        bool            `json:"deletado"`
	DataExclusao    *time.Time      `json:"dataExclusao"`
	DataCriacao     time.Time       `json:"dataCriacao"`
	DataAtualizacao time.Time       `json:"dataAtualizacao"`
}

// CreateMobiliarioRequest entrada para posicionar mobiliário na planta
// (chaves em inglês como o frontend original envia).
type CreateMobiliarioRequest struct {
	Type   string   `json:"type"`
	Room   string   `json:"room"`
	Status string   `json:"status"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
}

// MobiliarioResponse saída de um item de mobiliário.
type MobiliarioResponse struct {
	ID     string   `json:"id"`
	Type   string   `json:"type"`
	Room   string   `json:"room"`
	Status string   `json:"status"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
}

// LixeiraItemResponse saída de um item da lixeira com a etapa embutida.
type LixeiraItemResponse struct {
	ID              string         `json:"id"`
	EtapaID         string         `json:"etapaId"`
	DataExclusao    time.Time      `json:"dataExclusao"`
	UsuarioExclusao string         `json:"usuarioExclusao"`
	Etapa           *EtapaResponse `json:"etapa"`
}

const dateLayout = "2006-01-02"

// ToObraResponse converte a entidade; etapas e mobiliário vão nos campos aninhados.
func ToObraResponse(o *entity.Obra, etapas []*entity.Etapa, mobiliario []*entity.Mobiliario) *ObraResponse {
	if o == nil {
		return nil
	}
	out := &ObraResponse{
		ID:              o.ID,
		Nome:            o.Nome,
		Localizacao:     o.Localizacao,
		Valor:           o.Valor,
		Status:          o.Status,
		Progresso:       o.Progresso,
		DataInicio:      o.DataInicio.Format(dateLayout),
		DataCriacao:     o.DataCriacao,
		DataAtualizacao: o.DataAtualizacao,
		Etapas:          make([]EtapaResponse, 0, len(etapas)),
		Furniture:       make([]MobiliarioResponse, 0, len(mobiliario)),
	}
	for _, e := range etapas {
		out.Etapas = append(out.Etapas, *ToEtapaResponse(e))
	}
	for _, m := range mobiliario {
		out.Furniture = append(out.Furniture, *ToMobiliarioResponse(m))
	}
	return out
}

// ToEtapaResponse converte a entidade para o DTO de saída.
func ToEtapaResponse(e *entity.Etapa) *EtapaResponse {
	if e == nil {
		return nil
	}
	fotos := e.Fotos
	if len(fotos) == 0 {
		fotos = json.RawMessage("[]")
	}
	return &EtapaResponse{
		ID:              e.ID,
		ObraID:          e.ObraID,
		Titulo:          e.Titulo,
		Descricao:       e.Descricao,
		DataEtapa:       e.DataEtapa.Format(dateLayout),
		Fotos:           fotos,
		Deletado:        e.Deletado,
		DataExclusao:    e.DataExclusao,
		DataCriacao:     e.DataCriacao,
		DataAtualizacao: e.DataAtualizacao,
	}
}

// ToMobiliarioResponse converte a entidade para o DTO de saída.
func ToMobiliarioResponse(m *entity.Mobiliario) *MobiliarioResponse {
	if m == nil {
		return nil
	}
	return &MobiliarioResponse{
		ID:     m.ID,
		Type:   m.Tipo,
		Room:   m.Comodo,
		Status: m.Status,
		X:      m.PosicaoX,
		Y:      m.PosicaoY,
	}
}
