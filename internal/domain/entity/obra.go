package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Obra representa uma obra (canteiro) acompanhada pelo sistema.
type Obra struct {
	ID              string
	Nome            string
	Localizacao     string
	Valor           decimal.Decimal
	Status          string
	Progresso       int // 0..100
	DataInicio      time.Time
	DataCriacao     time.Time
	DataAtualizacao time.Time
}

// Etapa é um marco da linha do tempo de uma obra, com fotos.
// Exclusão é lógica (Deletado) e passa pela lixeira antes do delete físico.
type Etapa struct {
	ID              string
	ObraID          string
	Titulo          string
	Descricao       string
	DataEtapa       time.Time
	Fotos           json.RawMessage // array JSON de URLs
	Deletado        bool
	DataExclusao    *time.Time
	DataCriacao     time.Time
	DataAtualizacao time.Time
}

// Status possíveis do mobiliário.
const (
	MobiliarioExistente = "existente"
	MobiliarioNovo      = "novo"
)

// Mobiliario é um item de mobília posicionado na planta de uma obra.
type Mobiliario struct {
	ID          string
	ObraID      string
	Tipo        string
	Comodo      string
	Status      string // existente, novo
	PosicaoX    *float64
	PosicaoY    *float64
	DataCriacao time.Time
}

// LixeiraItem referencia uma etapa excluída logicamente.
type LixeiraItem struct {
	ID              string
	EtapaID         string
	DataExclusao    time.Time
	UsuarioExclusao string
}
