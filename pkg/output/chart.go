package output

import (
	"time"

	"github.com/iwvelando/nav-landing/internal/projection"
	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/shopspring/decimal"
)

// SeriesPoint is one point of the NAV per share chart.
type SeriesPoint struct {
	Date  time.Time       `json:"-"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// ChartSeries returns the NAV per share series with month-year tick labels.
func ChartSeries(p projection.Projection) []SeriesPoint {
	dates := p.Dates()
	points := make([]SeriesPoint, 0, len(dates))
	for i, date := range dates {
		points = append(points, SeriesPoint{
			Date:  date,
			Label: datetime.ChartLabel(date),
			Value: p.Periods[i].NAVPerShare,
		})
	}
	return points
}
