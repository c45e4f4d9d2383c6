package finance

import (
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/shopspring/decimal"
)

var taxProvisionFactor = decimal.RequireFromString(constants.TaxProvisionFactor)

// GrossVariation is the fund's share of an asset's projected value change.
func GrossVariation(currentValue, projectedValue, ownership decimal.Decimal) decimal.Decimal {
	return projectedValue.Sub(currentValue).Mul(ownership)
}

// NetVariation applies the corporate tax provision to a gross variation:
// strictly positive variations of provisioned assets are reduced to 75%,
// everything else passes through unchanged.
func NetVariation(grossVariation decimal.Decimal, taxProvision bool) decimal.Decimal {
	if taxProvision && grossVariation.IsPositive() {
		return grossVariation.Mul(taxProvisionFactor)
	}
	return grossVariation
}
