package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/nav-landing/pkg/datetime"
	"go.uber.org/zap"
)

func TestToDocumentRoundTrip(t *testing.T) {
	params := DefaultParameters()
	params.ScenarioName = "Vente 2026"
	params.DatedImpacts = []DatedImpact{{
		Label: "Distribution",
		Occurrences: []Occurrence{
			{Date: datetime.Date(2025, time.June, 30), Amount: amt("-200000.50")},
		},
	}}
	params.Assets = []Asset{{
		Name: "Immeuble A", Ownership: amt("0.4"), CurrentValue: amt("1000000"),
		ProjectedValue: amt("1250000"), TaxProvision: true,
	}}

	var buf bytes.Buffer
	if err := EncodeDocument(&buf, params); err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"Frais corporate",-50000`) {
		t.Errorf("recurring impacts not written as pairs:\n%s", buf.String())
	}

	got, notices, err := DecodeParameters(zap.NewNop(), &buf)
	if err != nil {
		t.Fatalf("DecodeParameters() error = %v", err)
	}
	if len(notices) != 0 {
		t.Errorf("notices = %v, want none", notices)
	}

	if got.FundName != params.FundName || got.ScenarioName != params.ScenarioName {
		t.Errorf("names = %q/%q", got.FundName, got.ScenarioName)
	}
	if !got.KnownNAVDate.Equal(params.KnownNAVDate) || !got.FundEndDate.Equal(params.FundEndDate) {
		t.Errorf("dates = %v..%v", got.KnownNAVDate, got.FundEndDate)
	}
	if !got.KnownNAV.Equal(params.KnownNAV) || !got.ShareCount.Equal(params.ShareCount) {
		t.Errorf("NAV/shares = %s/%s", got.KnownNAV, got.ShareCount)
	}
	for i, impact := range params.RecurringImpacts {
		if got.RecurringImpacts[i].Label != impact.Label || !got.RecurringImpacts[i].Amount.Equal(impact.Amount) {
			t.Errorf("impact %d = %+v, want %+v", i, got.RecurringImpacts[i], impact)
		}
	}
	occurrence := got.DatedImpacts[0].Occurrences[0]
	if !occurrence.Date.Equal(datetime.Date(2025, time.June, 30)) || !occurrence.Amount.Equal(amt("-200000.5")) {
		t.Errorf("occurrence = %+v", occurrence)
	}
	asset := got.Assets[0]
	if asset.Name != "Immeuble A" || !asset.Ownership.Equal(amt("0.4")) || !asset.TaxProvision {
		t.Errorf("asset = %+v", asset)
	}
	if !asset.NetVariation().Equal(params.Assets[0].NetVariation()) {
		t.Errorf("NetVariation = %s, want %s", asset.NetVariation(), params.Assets[0].NetVariation())
	}
}

func TestToDocumentEmptyLists(t *testing.T) {
	params := DefaultParameters()
	params.RecurringImpacts = nil

	doc := params.ToDocument()
	if doc.Impacts == nil || doc.DatedImpacts == nil || doc.Assets == nil {
		t.Errorf("ToDocument() lists must be empty, not nil: %+v", doc)
	}
}
