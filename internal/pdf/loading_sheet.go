// Package pdf renders printable loading sheets for confirmed outbound orders.
package pdf

import (
	"fmt"
	"strconv"
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

	"github.com/guttosm/shipit-service/internal/domain/model"
)

// ContentType of generated documents.
const ContentType = "application/pdf"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LoadingSheet describes one printed outbound manifest.
type LoadingSheet struct {
	WarehouseID int
	RequestID   string
	GeneratedAt time.Time
	Result      *model.FulfillmentResult
}

// Generator renders loading sheets.
type Generator interface {
	LoadingSheet(sheet LoadingSheet) ([]byte, error)
}

// MarotoGenerator renders A4 loading sheets with one block per truck.
type MarotoGenerator struct{}

// NewMarotoGenerator returns a generator.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// LoadingSheet returns the PDF bytes of sheet.
func (g *MarotoGenerator) LoadingSheet(sheet LoadingSheet) ([]byte, error) {
	if sheet.Result == nil {
		return nil, fmt.Errorf("pdf: loading sheet without fulfillment result")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Loading sheet warehouse %d", sheet.WarehouseID), true).
		WithAuthor("shipit-service", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, truck := range sheet.Result.Trucks {
		m.AddRows(truckRows(truck)...)
		m.AddRows(line.NewRow(3))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate loading sheet: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(sheet LoadingSheet) core.Row {
	generated := sheet.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New("OUTBOUND LOADING SHEET", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Warehouse "+strconv.Itoa(sheet.WarehouseID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Trucks used: %d   Trucks needed: %d",
				len(sheet.Result.Trucks), sheet.Result.TrucksNeeded), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(generated.UTC().Format(time.RFC3339), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Request "+nonEmpty(sheet.RequestID, "-"), props.Text{
				Size: 7, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func truckRows(truck model.Truck) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Truck %d", truck.Number), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
			})),
			col.New(4).Add(text.New(truck.LoadKg.String()+" kg", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New("GTIN", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(4).Add(text.New("Quantity", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		),
	}
	for _, l := range truck.Lines {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(text.New(l.GTIN, props.Text{Size: 8, Top: 0.5})),
			col.New(4).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 0.5})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
