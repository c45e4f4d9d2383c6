package finance

import (
	"fmt"
	"time"

	"github.com/iwvelando/nav-landing/pkg/datetime"
	"github.com/iwvelando/nav-landing/pkg/validation"
)

// SemiAnnualPeriods returns the valuation dates of a projection: the known
// NAV date first, then every June 30 and December 31 strictly after it,
// scanning years while December 31 of the year is not after endDate.
func SemiAnnualPeriods(knownDate, endDate time.Time) ([]time.Time, error) {
	if endDate.Before(knownDate) {
		return nil, fmt.Errorf("%w: %s < %s", validation.ErrEndBeforeStart,
			datetime.FormatDate(endDate), datetime.FormatDate(knownDate))
	}

	periods := []time.Time{knownDate}
	for year := knownDate.Year(); ; year++ {
		june, december := datetime.SemesterEnds(year)
		if december.After(endDate) {
			break
		}
		if june.After(knownDate) {
			periods = append(periods, june)
		}
		if december.After(knownDate) {
			periods = append(periods, december)
		}
	}
	return periods, nil
}
