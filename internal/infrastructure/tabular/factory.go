package tabular

import (
	"path/filepath"
	"strings"

	"github.com/obratrack/obratrack-api/internal/application/importacao"
	"github.com/obratrack/obratrack-api/internal/domain"
)

// Opener resolve o formato do arquivo pela extensão e delega ao parser
// correspondente. O suporte a Excel é opcional e controlado na construção.
type Opener struct {
	excelHabilitado bool
}

func NewOpener(excelHabilitado bool) *Opener {
	return &Opener{excelHabilitado: excelHabilitado}
}

// Open implementa importacao.SourceOpener.
func (o *Opener) Open(conteudo []byte, nomeArquivo string) (importacao.RowSource, error) {
	ext := strings.ToLower(filepath.Ext(nomeArquivo))
	switch ext {
	case ".csv":
		return abrirCSV(conteudo)
	case ".xlsx", ".xls":
		if !o.excelHabilitado {
			return nil, domain.ErrCapabilityUnavailable
		}
		return abrirXLSX(conteudo)
	default:
		return nil, &importacao.ErroParse{Motivo: "Apenas arquivos CSV (.csv), Excel (.xlsx, .xls) são suportados"}
	}
}
