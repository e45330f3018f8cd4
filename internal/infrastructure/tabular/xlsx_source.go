package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/obratrack/obratrack-api/internal/application/importacao"
)

// abrirXLSX lê a primeira aba da pasta de trabalho. A primeira linha é o
// cabeçalho; as demais viram linhas de dados.
func abrirXLSX(conteudo []byte) (importacao.RowSource, error) {
	f, err := excelize.OpenReader(bytes.NewReader(conteudo))
	if err != nil {
		return nil, &importacao.ErroParse{Motivo: "Não foi possível abrir o arquivo Excel"}
	}
	defer f.Close()

	abas := f.GetSheetList()
	if len(abas) == 0 {
		return nil, &importacao.ErroParse{Motivo: "Planilha Excel está vazia"}
	}
	registros, err := f.GetRows(abas[0])
	if err != nil {
		return nil, &importacao.ErroParse{Motivo: "Não foi possível ler a planilha Excel"}
	}
	if len(registros) == 0 {
		return nil, &importacao.ErroParse{Motivo: "Planilha Excel está vazia"}
	}
	return montarTabela(registros), nil
}
