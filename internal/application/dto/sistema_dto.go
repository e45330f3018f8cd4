package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo"`
}

// LoginResponse resposta do login com token Bearer.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	Usuario *UsuarioInfo `json:"usuario,omitempty"`
}

// UsuarioInfo dados do usuário autenticado.
type UsuarioInfo struct {
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}

// CreateHistoricoRequest entrada para registrar um evento de auditoria.
type CreateHistoricoRequest struct {
	Usuario    string          `json:"usuario"`
	Acao       string          `json:"acao"`
	Entidade   string          `json:"entidade"`
	EntidadeID string          `json:"entidadeId"`
	Descricao  string          `json:"descricao"`
	Detalhes   json.RawMessage `json:"detalhes"`
	Status     string          `json:"status"`
}

// HistoricoResponse saída de um registro do histórico de acesso.
type HistoricoResponse struct {
	ID         string          `json:"id"`
	Usuario    string          `json:"usuario"`
	Acao       string          `json:"acao"`
	Entidade   string          `json:"entidade,omitempty"`
	EntidadeID string          `json:"entidadeId,omitempty"`
	Descricao  string          `json:"descricao"`
	Detalhes   json.RawMessage `json:"detalhes"`
	Status     string          `json:"status"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	UserAgent  string          `json:"userAgent,omitempty"`
	DataAcao   time.Time       `json:"dataAcao"`
	Tempo      string          `json:"tempo"`
}

// HistoricoListResponse lista paginada de registros.
type HistoricoListResponse struct {
	Items []HistoricoResponse `json:"items"`
	PageResponse
}

// LimparHistoricoResponse resultado da limpeza por retenção.
type LimparHistoricoResponse struct {
	Message            string `json:"message"`
	RegistrosDeletados int64  `json:"registrosDeletados"`
}

// CreateConfiguracaoRequest entrada para criar uma configuração.
type CreateConfiguracaoRequest struct {
	Chave     string          `json:"chave"`
	Valor     json.RawMessage `json:"valor"` // aceita string, número, bool ou objeto
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Categoria string          `json:"categoria"`
	Editavel  *bool           `json:"editavel"`
}

// UpdateConfiguracaoRequest entrada para editar valor/descrição.
type UpdateConfiguracaoRequest struct {
	Valor     json.RawMessage `json:"valor"`
	Descricao *string         `json:"descricao"`
}

// ConfiguracaoResponse saída de uma configuração com o valor coerido pelo tipo.
type ConfiguracaoResponse struct {
	ID              string    `json:"id"`
	Chave           string    `json:"chave"`
	Valor           any       `json:"valor"`
	Tipo            string    `json:"tipo"`
	Descricao       string    `json:"descricao"`
	Categoria       string    `json:"categoria"`
	Editavel        bool      `json:"editavel"`
	DataCriacao     time.Time `json:"dataCriacao"`
	DataAtualizacao time.Time `json:"dataAtualizacao"`
}

// CreateFeedRequest entrada para publicar no feed.
type CreateFeedRequest struct {
	Usuario  string          `json:"usuario"`
	Titulo   string          `json:"titulo"`
	Conteudo string          `json:"conteudo"`
	Tipo     string          `json:"tipo"`
	ObraID   string          `json:"obraId"`
	Imagens  json.RawMessage `json:"imagens"`
	Tags     json.RawMessage `json:"tags"`
	Publico  *bool           `json:"publico"`
}

// UpdateFeedRequest entrada para editar uma postagem.
type UpdateFeedRequest struct {
	Titulo   *string         `json:"titulo"`
	Conteudo *string         `json:"conteudo"`
	Tipo     *string         `json:"tipo"`
	Imagens  json.RawMessage `json:"imagens"`
	Tags     json.RawMessage `json:"tags"`
	Publico  *bool           `json:"publico"`
}

// FeedResponse saída de uma postagem com comentários embutidos.
type FeedResponse struct {
	ID               string               `json:"id"`
	Usuario          string               `json:"usuario"`
	Titulo           string               `json:"titulo"`
	Conteudo         string               `json:"conteudo"`
	Tipo             string               `json:"tipo"`
	ObraID           string               `json:"obraId,omitempty"`
	Imagens          json.RawMessage      `json:"imagens"`
	Tags             json.RawMessage      `json:"tags"`
	Curtidas         int                  `json:"curtidas"`
	ComentariosCount int                  `json:"comentariosCount"`
	Publico          bool                 `json:"publico"`
	DataPublicacao   time.Time            `json:"dataPublicacao"`
	DataAtualizacao  time.Time            `json:"dataAtualizacao"`
	Comentarios      []ComentarioResponse `json:"comentarios"`
}

// FeedListResponse lista paginada do feed.
type FeedListResponse struct {
	Items []FeedResponse `json:"items"`
	PageResponse
}

// CurtirResponse resultado de uma curtida.
type CurtirResponse struct {
	Curtidas int `json:"curtidas"`
}

// CreateComentarioRequest entrada para comentar uma postagem.
type CreateComentarioRequest struct {
	Usuario  string `json:"usuario"`
	Conteudo string `json:"conteudo"`
}

// ComentarioResponse saída de um comentário.
type ComentarioResponse struct {
	ID             string    `json:"id"`
	FeedID         string    `json:"feedId"`
	Usuario        string    `json:"usuario"`
	Conteudo       string    `json:"conteudo"`
	DataComentario time.Time `json:"dataComentario"`
}

// ToHistoricoResponse converte a entidade; Tempo é o tempo relativo da ação
// calculado contra agora.
func ToHistoricoResponse(h *entity.HistoricoAcesso, agora time.Time) *HistoricoResponse {
	if h == nil {
		return nil
	}
	detalhes := h.Detalhes
	if len(detalhes) == 0 || !json.Valid(detalhes) {
		detalhes = json.RawMessage("{}")
	}
	return &HistoricoResponse{
		ID:         h.ID,
		Usuario:    h.Usuario,
		Acao:       h.Acao,
		Entidade:   h.Entidade,
		EntidadeID: h.EntidadeID,
		Descricao:  h.Descricao,
		Detalhes:   detalhes,
		Status:     h.Status,
		IPAddress:  h.IPAddress,
		UserAgent:  h.UserAgent,
		DataAcao:   h.DataAcao,
		Tempo:      TempoRelativo(h.DataAcao, agora),
	}
}

// TempoRelativo formata quanto tempo atrás a ação ocorreu ("Há 2 dias").
func TempoRelativo(quando, agora time.Time) string {
	if quando.IsZero() {
		return "Desconhecido"
	}
	diff := agora.Sub(quando)
	switch {
	case diff >= 24*time.Hour:
		dias := int(diff.Hours() / 24)
		return fmt.Sprintf("Há %d dia%s", dias, plural(dias))
	case diff >= time.Hour:
		horas := int(diff.Hours())
		return fmt.Sprintf("Há %d hora%s", horas, plural(horas))
	case diff >= time.Minute:
		minutos := int(diff.Minutes())
		return fmt.Sprintf("Há %d minuto%s", minutos, plural(minutos))
	default:
		return "Agora mesmo"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// ToConfiguracaoResponse converte a entidade coerindo Valor conforme Tipo:
// number vira int ou float, boolean aceita true/1/yes/sim, json é decodificado.
// Valores inválidos degradam para o padrão do tipo (0, false, {}).
func ToConfiguracaoResponse(c *entity.Configuracao) *ConfiguracaoResponse {
	if c == nil {
		return nil
	}
	var valor any = c.Valor
	switch c.Tipo {
	case entity.ConfigNumber:
		if strings.Contains(c.Valor, ".") {
			f, err := strconv.ParseFloat(c.Valor, 64)
			if err != nil {
				valor = 0
			} else {
				valor = f
			}
		} else {
			n, err := strconv.Atoi(c.Valor)
			if err != nil {
				valor = 0
			} else {
				valor = n
			}
		}
	case entity.ConfigBoolean:
		switch strings.ToLower(c.Valor) {
		case "true", "1", "yes", "sim":
			valor = true
		default:
			valor = false
		}
	case entity.ConfigJSON:
		var decoded any
		if err := json.Unmarshal([]byte(c.Valor), &decoded); err != nil {
			valor = map[string]any{}
		} else {
			valor = decoded
		}
	}
	return &ConfiguracaoResponse{
		ID:              c.ID,
		Chave:           c.Chave,
		Valor:           valor,
		Tipo:            c.Tipo,
		Descricao:       c.Descricao,
		Categoria:       c.Categoria,
		Editavel:        c.Editavel,
		DataCriacao:     c.DataCriacao,
		DataAtualizacao: c.DataAtualizacao,
	}
}

// ToFeedResponse converte a entidade com seus comentários.
func ToFeedResponse(f *entity.FeedPostagem, comentarios []*entity.ComentarioFeed) *FeedResponse {
	if f == nil {
		return nil
	}
	imagens := f.Imagens
	if len(imagens) == 0 {
		imagens = json.RawMessage("[]")
	}
	tags := f.Tags
	if len(tags) == 0 {
		tags = json.RawMessage("[]")
	}
	out := &FeedResponse{
		ID:               f.ID,
		Usuario:          f.Usuario,
		Titulo:           f.Titulo,
		Conteudo:         f.Conteudo,
		Tipo:             f.Tipo,
		ObraID:           f.ObraID,
		Imagens:          imagens,
		Tags:             tags,
		Curtidas:         f.Curtidas,
		ComentariosCount: f.ComentariosCount,
		Publico:          f.Publico,
		DataPublicacao:   f.DataPublicacao,
		DataAtualizacao:  f.DataAtualizacao,
		Comentarios:      make([]ComentarioResponse, 0, len(comentarios)),
	}
	for _, c := range comentarios {
		out.Comentarios = append(out.Comentarios, *ToComentarioResponse(c))
	}
	return out
}

// ToComentarioResponse converte a entidade para o DTO de saída.
func ToComentarioResponse(c *entity.ComentarioFeed) *ComentarioResponse {
	if c == nil {
		return nil
	}
	return &ComentarioResponse{
		ID:             c.ID,
		FeedID:         c.FeedID,
		Usuario:        c.Usuario,
		Conteudo:       c.Conteudo,
		DataComentario: c.DataComentario,
	}
}
