package output

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SheetName is the worksheet holding the projection table.
const SheetName = "Projection"

const euroNumberFormat = `#,##0.00 "€"`

// WriteXLSX writes the projection as a workbook: a header row, one row per
// period with numeric euro cells, and a line chart of the NAV per share.
func WriteXLSX(w io.Writer, p projection.Projection) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := euroNumberFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	table := BuildTable(p)
	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return err
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for r, row := range table.Rows {
		rowNum := r + 2
		dateCell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, dateCell, row.Date); err != nil {
			return err
		}
		for c, value := range row.Values {
			cell, err := excelize.CoordinatesToCellName(c+2, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, value.InexactFloat64()); err != nil {
				return err
			}
		}
		if len(row.Values) > 0 {
			first, _ := excelize.CoordinatesToCellName(2, rowNum)
			last, _ := excelize.CoordinatesToCellName(len(row.Values)+1, rowNum)
			if err := f.SetCellStyle(SheetName, first, last, amountStyle); err != nil {
				return err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 20); err != nil {
		return err
	}

	if len(table.Rows) > 0 {
		if err := addNAVPerShareChart(f, p, lastCol, len(table.Rows)+1, len(table.Headers)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addNAVPerShareChart(f *excelize.File, p projection.Projection, navCol string, lastRow, columns int) error {
	anchor, err := excelize.CoordinatesToCellName(columns+2, 2)
	if err != nil {
		return err
	}

	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$1", SheetName, navCol),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetName, navCol, navCol, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: "Atterrissage VL - " + p.FundName}},
		Legend: excelize.ChartLegend{
			Position: "bottom",
		},
	}
	if err := f.AddChart(SheetName, anchor, chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}
	return nil
}

// WorkbookName returns the download file name of a projection workbook,
// e.g. "atterrissage-vl-fonds-ete.xlsx" for the fund "Fonds Été".
func WorkbookName(p projection.Projection) string {
	slug := slugify(p.FundName)
	if slug == "" {
		return "atterrissage-vl.xlsx"
	}
	return "atterrissage-vl-" + slug + ".xlsx"
}

func slugify(name string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripAccents, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
