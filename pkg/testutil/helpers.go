// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

// FindScenario finds a projection by scenario name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindScenario(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].ScenarioName == name {
			return &results[i]
		}
	}
	return nil
}

// SampleParameters returns a one-semester fund: NAV 10 000 000 over 10 000
// shares, one provisioned asset gaining 250 000 and one recurring impact of
// -50 000. Its NAV per share goes from 1000.00 to 1013.75.
func SampleParameters() config.FundParameters {
	return config.FundParameters{
		FundName:     "Fonds Test",
		ScenarioName: "Scénario de base",
		KnownNAVDate: datetime.Date(2024, time.December, 31),
		FundEndDate:  datetime.Date(2025, time.June, 30),
		KnownNAV:     decimal.NewFromInt(10_000_000),
		ShareCount:   decimal.NewFromInt(10_000),
		RecurringImpacts: []config.RecurringImpact{
			{Label: "Frais corporate", Amount: decimal.NewFromInt(-50_000)},
		},
		DatedImpacts: []config.DatedImpact{},
		Assets: []config.Asset{{
			Name:           "Immeuble A",
			Ownership:      decimal.NewFromInt(1),
			CurrentValue:   decimal.NewFromInt(5_000_000),
			ProjectedValue: decimal.NewFromInt(5_250_000),
			TaxProvision:   true,
		}},
	}
}

// Amount parses a decimal literal, panicking on malformed input.
func Amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
