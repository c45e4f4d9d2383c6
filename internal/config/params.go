package config

import (
	"errors"
	"time"

	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/finance"
	"github.com/iwvelando/nav-landing/pkg/validation"
	"github.com/shopspring/decimal"
)

// FundParameters holds everything needed to project a fund's NAV. It is
// rebuilt from a document on every evaluation and never mutated by the
// projection.
type FundParameters struct {
	FundName         string
	ScenarioName     string
	KnownNAVDate     time.Time
	FundEndDate      time.Time
	KnownNAV         decimal.Decimal
	ShareCount       decimal.Decimal
	RecurringImpacts []RecurringImpact
	DatedImpacts     []DatedImpact
	Assets           []Asset
}

// RecurringImpact is applied identically at every period after the anchor.
type RecurringImpact struct {
	Label  string
	Amount decimal.Decimal
}

// DatedImpact is applied only at the periods whose date matches one of its
// occurrences.
type DatedImpact struct {
	Label       string
	Occurrences []Occurrence
}

// Occurrence is one dated amount of a DatedImpact.
type Occurrence struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Asset is a portfolio holding whose value changes once, at the first
// forward period.
type Asset struct {
	Name           string
	Ownership      decimal.Decimal // fraction in [0, 1]
	CurrentValue   decimal.Decimal
	ProjectedValue decimal.Decimal
	TaxProvision   bool
}

// GrossVariation is the fund's share of the asset's value change.
func (a Asset) GrossVariation() decimal.Decimal {
	return finance.GrossVariation(a.CurrentValue, a.ProjectedValue, a.Ownership)
}

// NetVariation is the gross variation after tax provisioning. It is always
// recomputed from the asset's inputs.
func (a Asset) NetVariation() decimal.Decimal {
	return finance.NetVariation(a.GrossVariation(), a.TaxProvision)
}

// AmountOn sums the occurrences falling on date. The boolean is false when
// none does.
func (d DatedImpact) AmountOn(date time.Time) (decimal.Decimal, bool) {
	total := decimal.Zero
	found := false
	for _, occurrence := range d.Occurrences {
		if datetime.SameDay(occurrence.Date, date) {
			total = total.Add(occurrence.Amount)
			found = true
		}
	}
	return total, found
}

// DefaultParameters returns the parameter set a new simulation starts from.
func DefaultParameters() FundParameters {
	return FundParameters{
		FundName:     constants.DefaultFundName,
		ScenarioName: constants.DefaultScenarioName,
		KnownNAVDate: datetime.Date(2024, time.December, 31),
		FundEndDate:  datetime.Date(2028, time.December, 31),
		KnownNAV:     decimal.NewFromInt(10_000_000),
		ShareCount:   decimal.NewFromInt(10_000),
		RecurringImpacts: []RecurringImpact{
			{Label: "Frais corporate", Amount: decimal.NewFromInt(-50_000)},
			{Label: "Honoraires NIV", Amount: decimal.NewFromInt(-30_000)},
		},
		DatedImpacts: []DatedImpact{},
		Assets:       []Asset{},
	}
}

// Validate checks the invariants a projection relies on. Every violation is
// reported, joined into one error.
func (p FundParameters) Validate() error {
	var errs []error

	if p.KnownNAVDate.IsZero() {
		errs = append(errs, validation.NewFieldError(keyKnownNAVDate, "", validation.ErrInvalidDate))
	}
	if p.FundEndDate.IsZero() {
		errs = append(errs, validation.NewFieldError(keyFundEndDate, "", validation.ErrInvalidDate))
	}
	if !p.KnownNAVDate.IsZero() && !p.FundEndDate.IsZero() && p.FundEndDate.Before(p.KnownNAVDate) {
		errs = append(errs, validation.NewFieldError(keyFundEndDate,
			datetime.FormatDate(p.FundEndDate), validation.ErrEndBeforeStart))
	}
	if !p.ShareCount.IsPositive() {
		errs = append(errs, validation.NewFieldError(keyShareCount,
			p.ShareCount.String(), validation.ErrNonPositiveShareCount))
	}

	return errors.Join(errs...)
}

// Periods returns the semi-annual valuation dates of the parameter set.
func (p FundParameters) Periods() ([]time.Time, error) {
	return finance.SemiAnnualPeriods(p.KnownNAVDate, p.FundEndDate)
}

// ValidateConfiguration returns non-fatal warnings about the parameter set.
func (p FundParameters) ValidateConfiguration() []string {
	periods, err := p.Periods()
	if err != nil {
		return nil
	}

	validator := validation.ParameterValidator{
		FundEndDate: p.FundEndDate,
		Periods:     periods,
	}
	for _, impact := range p.DatedImpacts {
		dates := make([]time.Time, 0, len(impact.Occurrences))
		for _, occurrence := range impact.Occurrences {
			dates = append(dates, occurrence.Date)
		}
		validator.DatedImpacts = append(validator.DatedImpacts, validation.DatedImpactConfig{
			Name:  impact.Label,
			Dates: dates,
		})
	}
	for _, asset := range p.Assets {
		validator.Assets = append(validator.Assets, validation.AssetConfig{
			Name:      asset.Name,
			Ownership: asset.Ownership,
		})
	}

	return validator.ValidateAll()
}
