package entity

import (
	"encoding/json"
	"time"
)

// Status de um registro do histórico de acesso.
const (
	HistoricoSuccess = "success"
	HistoricoError   = "error"
	HistoricoWarning = "warning"
	HistoricoInfo    = "info"
)

// HistoricoAcesso é um registro de auditoria: quem fez o quê, quando e sobre
// qual entidade. Detalhes carrega um objeto JSON livre.
type HistoricoAcesso struct {
	ID         string
	Usuario    string
	Acao       string // login, login_failed, create, update, delete, ...
	Entidade   string // obra, produto, etapa, ...
	EntidadeID string
	Descricao  string
	Detalhes   json.RawMessage
	Status     string
	IPAddress  string
	UserAgent  string
	DataAcao   time.Time
}

// Tipos de valor de uma configuração do sistema.
const (
	ConfigString  = "string"
	ConfigNumber  = "number"
	ConfigBoolean = "boolean"
	ConfigJSON    = "json"
)

// Configuracao é um par chave/valor tipado do sistema, agrupado por categoria.
// Valor é sempre armazenado como texto; a coerção acontece na serialização.
type Configuracao struct {
	ID              string
	Chave           string
	Valor           string
	Tipo            string // string, number, boolean, json
	Descricao       string
	Categoria       string
	Editavel        bool
	DataCriacao     time.Time
	DataAtualizacao time.Time
}

// Tipos de post do feed.
const (
	FeedPost      = "post"
	FeedUpdate    = "update"
	FeedMilestone = "milestone"
	FeedAlert     = "alert"
)

// FeedPostagem é uma publicação do feed social da obra.
// Curtidas e ComentariosCount são contadores desnormalizados.
type FeedPostagem struct {
	ID               string
	Usuario          string
	Titulo           string
	Conteudo         string
	Tipo             string
	ObraID           string // vazio = sem obra vinculada
	Imagens          json.RawMessage
	Tags             json.RawMessage
	Curtidas         int
	ComentariosCount int
	Publico          bool
	DataPublicacao   time.Time
	DataAtualizacao  time.Time
}

// ComentarioFeed é um comentário de uma postagem do feed.
type ComentarioFeed struct {
	ID             string
	FeedID         string
	Usuario        string
	Conteudo       string
	DataComentario time.Time
}
