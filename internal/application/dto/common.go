package dto

// PageRequest paginação para listagens (page/per_page como no frontend original).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage aplica valores padrão se Page/PerPage forem zero.
func (p *PageRequest) DefaultPage(perPage int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = perPage
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset converte page/per_page em offset SQL.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse metadados de página nas respostas de listagem.
type PageResponse struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
}

// NewPageResponse calcula os metadados a partir do total e da página pedida.
func NewPageResponse(total int, req PageRequest) PageResponse {
	pages := total / req.PerPage
	if total%req.PerPage != 0 {
		pages++
	}
	return PageResponse{
		Total:       total,
		Pages:       pages,
		CurrentPage: req.Page,
		PerPage:     req.PerPage,
	}
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse corpo de sucesso simples.
type MessageResponse struct {
	Message string `json:"message"`
}
