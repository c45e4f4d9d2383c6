// Package projection defines the data structures of a NAV landing projection
// and computes them from a fund's parameters.
package projection

import (
	"fmt"
	"time"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/pkg/adapters"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/finance"
	"github.com/iwvelando/nav-landing/pkg/mathutil"
	"github.com/iwvelando/nav-landing/pkg/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Period is one semi-annual valuation date of a projection.
type Period struct {
	Index        int
	Date         time.Time
	Assets       []finance.Contribution
	Impacts      []finance.Contribution
	DatedImpacts []finance.Contribution
	// NetAssetValue is the running NAV, never rounded.
	NetAssetValue decimal.Decimal
	NAVPerShare   decimal.Decimal
}

// Projection holds all information related to the projection of one
// scenario of a fund.
type Projection struct {
	FundName     string
	ScenarioName string
	Periods      []Period
	NAVPerShare  []decimal.Decimal
	Warnings     []string
}

// Dates returns the valuation dates of the projection.
func (p Projection) Dates() []time.Time {
	dates := make([]time.Time, len(p.Periods))
	for i, period := range p.Periods {
		dates[i] = period.Date
	}
	return dates
}

// GetProjection computes the NAV per share of every semi-annual period from
// the known NAV date to the fund end date.
func GetProjection(logger *zap.Logger, params config.FundParameters) (Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !params.ShareCount.IsPositive() {
		logger.Error("cannot derive NAV per share",
			zap.String("op", "projection.GetProjection"),
			zap.String("fund", params.FundName),
			zap.String("share_count", params.ShareCount.String()),
		)
		return Projection{}, fmt.Errorf("%w: share count is %s", validation.ErrDivisionByZero, params.ShareCount)
	}

	periods, err := params.Periods()
	if err != nil {
		return Projection{}, err
	}

	assets := adapters.AssetsToFinanceAssets(params.Assets)
	impacts := adapters.ImpactsToFinanceImpacts(params.RecurringImpacts)
	datedImpacts := adapters.DatedImpactsToFinanceImpacts(params.DatedImpacts)
	engine := finance.NewProjectionEngine(logger)

	result := Projection{
		FundName:     params.FundName,
		ScenarioName: params.ScenarioName,
		Periods:      make([]Period, 0, len(periods)),
		NAVPerShare:  make([]decimal.Decimal, 0, len(periods)),
		Warnings:     params.ValidateConfiguration(),
	}

	running := params.KnownNAV
	for i, date := range periods {
		changes, err := engine.ProcessPeriod(i, date, assets, impacts, datedImpacts)
		if err != nil {
			return Projection{}, err
		}

		if i > 0 {
			running = running.Add(changes.AssetTotal()).Add(changes.ImpactTotal())
		}
		running = running.Add(changes.DatedImpactTotal())

		perShare, ok := mathutil.SafeDivide(running, params.ShareCount)
		if !ok {
			return Projection{}, fmt.Errorf("%w at %s", validation.ErrDivisionByZero, datetime.FormatDate(date))
		}
		perShare = mathutil.Round(perShare)

		result.Periods = append(result.Periods, Period{
			Index:         i,
			Date:          date,
			Assets:        changes.Assets,
			Impacts:       changes.Impacts,
			DatedImpacts:  changes.DatedImpacts,
			NetAssetValue: running,
			NAVPerShare:   perShare,
		})
		result.NAVPerShare = append(result.NAVPerShare, perShare)
	}

	logger.Debug("projection computed",
		zap.String("op", "projection.GetProjection"),
		zap.String("fund", params.FundName),
		zap.String("scenario", params.ScenarioName),
		zap.Int("periods", len(result.Periods)),
	)

	return result, nil
}

// GetProjections computes the projection of every parameter set, in order.
func GetProjections(logger *zap.Logger, params []config.FundParameters) ([]Projection, error) {
	results := make([]Projection, 0, len(params))
	for _, p := range params {
		result, err := GetProjection(logger, p)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", p.ScenarioName, err)
		}
		results = append(results, result)
	}
	return results, nil
}
