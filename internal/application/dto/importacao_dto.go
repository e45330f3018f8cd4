package dto

// OpcoesImportacao flags de política enviadas junto com a planilha
// (campos de formulário multipart, como no frontend original).
type OpcoesImportacao struct {
	ValidarDuplicatas  bool
	ValidarPrecos      bool
	ValidarEstoque     bool
	AtualizarExistente bool
}

// ErroLinha erros de validação de uma linha da planilha (linha 1 = cabeçalho).
type ErroLinha struct {
	Linha int      `json:"linha"`
	Erros []string `json:"erros"`
}

// AvisoLinha avisos de uma linha aceita.
type AvisoLinha struct {
	Linha  int      `json:"linha"`
	Avisos []string `json:"avisos"`
}

// ImportacaoResponse resumo de uma importação bem-sucedida.
type ImportacaoResponse struct {
	Message        string       `json:"message"`
	Created        int          `json:"created"`
	Updated        int          `json:"updated"`
	Warnings       []AvisoLinha `json:"warnings"`
	TotalProcessed int          `json:"total_processed"`
}

// ImportacaoErroResponse corpo de erro de importação. Details é preenchido em
// erros de validação; RequiredColumns/FoundColumns apenas quando o cabeçalho
// não bate.
type ImportacaoErroResponse struct {
	Error           string      `json:"error"`
	Details         []ErroLinha `json:"details,omitempty"`
	RequiredColumns []string    `json:"required_columns,omitempty"`
	FoundColumns    []string    `json:"found_columns,omitempty"`
}
