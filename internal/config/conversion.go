package config

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

// ToDocument converts the parameters back to their exchange format. Amounts
// are written as plain JSON numbers and recurring impacts in the
// [label, amount] pair form, so that normalizing the result reproduces p.
func (p FundParameters) ToDocument() Document {
	doc := Document{
		FundName:     p.FundName,
		ScenarioName: p.ScenarioName,
		KnownNAVDate: formatDate(p.KnownNAVDate),
		FundEndDate:  formatDate(p.FundEndDate),
		KnownNAV:     number(p.KnownNAV),
		ShareCount:   number(p.ShareCount),
		Impacts:      make([]json.RawMessage, 0, len(p.RecurringImpacts)),
		DatedImpacts: make([]DatedImpactDocument, 0, len(p.DatedImpacts)),
		Assets:       make([]AssetDocument, 0, len(p.Assets)),
	}

	for _, impact := range p.RecurringImpacts {
		label, _ := json.Marshal(impact.Label)
		doc.Impacts = append(doc.Impacts, json.RawMessage(fmt.Sprintf("[%s,%s]", label, impact.Amount.String())))
	}

	for _, impact := range p.DatedImpacts {
		dated := DatedImpactDocument{
			Label:   impact.Label,
			Amounts: make([]OccurrenceDocument, 0, len(impact.Occurrences)),
		}
		for _, occurrence := range impact.Occurrences {
			dated.Amounts = append(dated.Amounts, OccurrenceDocument{
				Date:   formatDate(occurrence.Date),
				Amount: number(occurrence.Amount),
			})
		}
		doc.DatedImpacts = append(doc.DatedImpacts, dated)
	}

	for _, asset := range p.Assets {
		provision := json.RawMessage("false")
		if asset.TaxProvision {
			provision = json.RawMessage("true")
		}
		doc.Assets = append(doc.Assets, AssetDocument{
			Name:           asset.Name,
			Ownership:      number(asset.Ownership),
			CurrentValue:   number(asset.CurrentValue),
			ProjectedValue: number(asset.ProjectedValue),
			TaxProvision:   provision,
		})
	}

	return doc
}

// EncodeDocument writes the parameters as an indented JSON document.
func EncodeDocument(w io.Writer, p FundParameters) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p.ToDocument()); err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	return nil
}

func number(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return datetime.FormatDate(t)
}
