// Package pdf implementa a geração do relatório de estoque em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + data/hora de geração                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Produto | Categoria | Est. | Mín. | Preço │
//	│          | Valor Total   (estoque baixo destacado)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Itens ativos / Valor total do estoque              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/obratrack/obratrack-api/internal/application/usecase"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 21, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ usecase.RelatorioEstoqueGenerator = (*MarotoRelatorioGenerator)(nil)

// MarotoRelatorioGenerator gera o relatório de estoque usando Maroto v2.
type MarotoRelatorioGenerator struct{}

// NewMarotoRelatorioGenerator constrói o gerador.
func NewMarotoRelatorioGenerator() *MarotoRelatorioGenerator { return &MarotoRelatorioGenerator{} }

// GerarRelatorioEstoque gera o PDF com os produtos ativos e devolve os bytes.
func (g *MarotoRelatorioGenerator) GerarRelatorioEstoque(
	_ context.Context,
	produtos []*entity.Produto,
	geradoEm time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(geradoEm))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range produtos {
		m.AddRows(produtoRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totaisRow(produtos))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(geradoEm time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Almoxarifado da obra", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(geradoEm.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Produto", 3, align.Left),
		h("Categoria", 2, align.Left),
		h("Est.", 1, align.Center),
		h("Mín.", 1, align.Center),
		h("Preço", 1, align.Right),
		h("Valor Total", 2, align.Right),
	)
}

// produtoRow: produtos abaixo do estoque mínimo saem em vermelho.
func produtoRow(p *entity.Produto) core.Row {
	cor := colorGray
	if p.EstoqueBaixo() {
		cor = colorAlert
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Color: cor, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		cell(p.Codigo, 2, align.Left),
		cell(p.Nome, 3, align.Left),
		cell(p.Categoria, 2, align.Left),
		cell(fmt.Sprintf("%d", p.Estoque), 1, align.Center),
		cell(fmt.Sprintf("%d", p.EstoqueMinimo), 1, align.Center),
		cell("R$ "+p.Preco.StringFixed(2), 1, align.Right),
		cell("R$ "+p.ValorTotal().StringFixed(2), 2, align.Right),
	)
}

func totaisRow(produtos []*entity.Produto) core.Row {
	total := decimal.Zero
	baixo := 0
	for _, p := range produtos {
		total = total.Add(p.ValorTotal())
		if p.EstoqueBaixo() {
			baixo++
		}
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Itens ativos: %d", len(produtos)), props.Text{
				Size: 9, Top: 2,
			}),
			text.New(fmt.Sprintf("Abaixo do mínimo: %d", baixo), props.Text{
				Size: 9, Top: 8, Color: colorAlert,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL DO ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("R$ "+total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 7,
			}),
		),
	)
}
