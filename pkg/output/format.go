package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

// PrettyFormat writes a human-readable rather than machine-readable table
// per scenario.
func PrettyFormat(w io.Writer, results []projection.Projection) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "--- %s / %s ---\n", result.FundName, result.ScenarioName); err != nil {
			return err
		}

		table := BuildTable(result)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, strings.Join(table.Headers, "\t")+"\t")
		for _, row := range table.FormattedRows() {
			fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		for _, warning := range result.Warnings {
			if _, err := fmt.Fprintf(w, "! %s\n", warning); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat writes one row per date with a NAV and NAV per share column for
// every scenario.
func CsvFormat(w io.Writer, results []projection.Projection) error {
	if len(results) == 0 {
		return nil
	}

	writer := csv.NewWriter(w)
	header := []string{"date"}
	for _, result := range results {
		header = append(header,
			fmt.Sprintf("anr (%s)", result.ScenarioName),
			fmt.Sprintf("vl (%s)", result.ScenarioName),
		)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	// scenarios of different horizons share the longest timeline
	timeline := results[0].Dates()
	for _, result := range results[1:] {
		if len(result.Periods) > len(timeline) {
			timeline = result.Dates()
		}
	}

	for i, date := range timeline {
		record := []string{datetime.FormatDate(date)}
		for _, result := range results {
			if i < len(result.Periods) {
				record = append(record,
					result.Periods[i].NetAssetValue.StringFixed(2),
					result.Periods[i].NAVPerShare.StringFixed(2),
				)
			} else {
				record = append(record, "", "")
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of the results.
func CsvString(results []projection.Projection) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONRow is the machine-readable form of one projected period.
type JSONRow struct {
	Fund          string            `json:"fund"`
	Scenario      string            `json:"scenario"`
	Index         int               `json:"index"`
	Date          string            `json:"date"`
	Contributions map[string]string `json:"contributions"`
	NetAssetValue decimal.Decimal   `json:"net_asset_value"`
	NAVPerShare   decimal.Decimal   `json:"nav_per_share"`
}

// JSONFormat writes every period of every scenario as a JSON array.
func JSONFormat(w io.Writer, results []projection.Projection) error {
	rows := make([]JSONRow, 0)
	for _, result := range results {
		table := BuildTable(result)
		for i, period := range result.Periods {
			row := JSONRow{
				Fund:          result.FundName,
				Scenario:      result.ScenarioName,
				Index:         period.Index,
				Date:          datetime.FormatDate(period.Date),
				Contributions: make(map[string]string),
				NetAssetValue: period.NetAssetValue,
				NAVPerShare:   period.NAVPerShare,
			}
			values := table.Rows[i].Values
			// headers: date, contributions..., NAV, NAV per share
			for j, header := range table.Headers[1 : len(table.Headers)-2] {
				row.Contributions[header] = values[j].String()
			}
			rows = append(rows, row)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}
