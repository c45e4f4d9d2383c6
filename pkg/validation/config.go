package validation

import (
	"fmt"
	"time"

	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

// ValidateFundEndDate warns when the fund end date is not a semester
// boundary; periods after the last boundary before it are never generated.
func ValidateFundEndDate(endDate time.Time) string {
	if datetime.IsSemesterEnd(endDate) {
		return ""
	}
	return fmt.Sprintf("Fund end date %s is not a semester end; the projection stops at the last 30/06 or 31/12 before it",
		datetime.FormatDate(endDate))
}

// ValidateOccurrenceDate warns when a dated impact occurrence matches none of
// the projection periods and therefore never applies.
func ValidateOccurrenceDate(impactName string, date time.Time, periods []time.Time) string {
	for _, period := range periods {
		if datetime.SameDay(date, period) {
			return ""
		}
	}
	return fmt.Sprintf("Dated impact '%s' occurrence on %s matches no projection period and is ignored",
		impactName, datetime.FormatDate(date))
}

// ValidateOwnership warns about assets the fund does not hold at all.
func ValidateOwnership(assetName string, ownership decimal.Decimal) string {
	if ownership.IsZero() {
		return fmt.Sprintf("Asset '%s' has zero ownership and contributes no variation", assetName)
	}
	return ""
}

// ParameterValidator gathers the inputs needed to produce non-fatal warnings
// about a parameter set.
type ParameterValidator struct {
	FundEndDate  time.Time
	Periods      []time.Time
	DatedImpacts []DatedImpactConfig
	Assets       []AssetConfig
}

// DatedImpactConfig is the validation view of a dated impact.
type DatedImpactConfig struct {
	Name  string
	Dates []time.Time
}

// AssetConfig is the validation view of an asset.
type AssetConfig struct {
	Name      string
	Ownership decimal.Decimal
}

// ValidateAll returns every warning for the parameter set.
func (pv *ParameterValidator) ValidateAll() []string {
	var warnings []string

	if warning := ValidateFundEndDate(pv.FundEndDate); warning != "" {
		warnings = append(warnings, warning)
	}

	for _, impact := range pv.DatedImpacts {
		for _, date := range impact.Dates {
			if warning := ValidateOccurrenceDate(impact.Name, date, pv.Periods); warning != "" {
				warnings = append(warnings, warning)
			}
		}
	}

	for _, asset := range pv.Assets {
		if warning := ValidateOwnership(asset.Name, asset.Ownership); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
