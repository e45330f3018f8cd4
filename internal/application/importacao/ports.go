package importacao

// RowSource é a visão unificada de uma fonte tabular (texto delimitado ou
// grade de planilha), já decodificada: cabeçalho + linhas como mapas
// coluna→valor textual.
type RowSource interface {
	Headers() []string
	Rows() []map[string]string
}

// SourceOpener abre um RowSource a partir dos bytes enviados e do nome do
// arquivo (a extensão decide o formato).
type SourceOpener interface {
	Open(conteudo []byte, nomeArquivo string) (RowSource, error)
}
