// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/finance"
	"github.com/iwvelando/nav-landing/pkg/format"
	"github.com/shopspring/decimal"
)

// Column headers
const (
	ColumnDate        = "Date"
	ColumnNAV         = "ANR (€)"
	ColumnNAVPerShare = "VL prévisionnelle (€)"

	assetPrefix       = "Actif - "
	impactPrefix      = "Impact - "
	datedImpactPrefix = "Impact daté - "
)

// Table is the tabular view of one projection: one row per period.
type Table struct {
	Headers []string
	Rows    []Row
}

// Row holds the numeric cells of one period, aligned with the table headers
// after the date column.
type Row struct {
	Date   string
	Values []decimal.Decimal
}

// BuildTable lays a projection out as columns: the date, each asset, each
// recurring impact, each dated impact, the NAV and the NAV per share.
func BuildTable(p projection.Projection) Table {
	table := Table{Headers: []string{ColumnDate}}
	if len(p.Periods) > 0 {
		first := p.Periods[0]
		table.Headers = appendLabels(table.Headers, assetPrefix, first.Assets)
		table.Headers = appendLabels(table.Headers, impactPrefix, first.Impacts)
		table.Headers = appendLabels(table.Headers, datedImpactPrefix, first.DatedImpacts)
	}
	table.Headers = append(table.Headers, ColumnNAV, ColumnNAVPerShare)

	for _, period := range p.Periods {
		values := make([]decimal.Decimal, 0, len(table.Headers)-1)
		values = appendAmounts(values, period.Assets)
		values = appendAmounts(values, period.Impacts)
		values = appendAmounts(values, period.DatedImpacts)
		values = append(values, period.NetAssetValue, period.NAVPerShare)
		table.Rows = append(table.Rows, Row{Date: datetime.FormatDate(period.Date), Values: values})
	}
	return table
}

// FormattedRows renders every cell as text, amounts in euros.
func (t Table) FormattedRows() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Date)
		for _, value := range row.Values {
			cells = append(cells, format.Euro(value))
		}
		rows = append(rows, cells)
	}
	return rows
}

func appendLabels(headers []string, prefix string, contributions []finance.Contribution) []string {
	for _, c := range contributions {
		headers = append(headers, prefix+c.Label)
	}
	return headers
}

func appendAmounts(values []decimal.Decimal, contributions []finance.Contribution) []decimal.Decimal {
	for _, c := range contributions {
		values = append(values, c.Amount)
	}
	return values
}
