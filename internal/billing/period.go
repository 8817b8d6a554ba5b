package billing

import (
	"time"

	"github.com/username/plant-hire-calculator/pkg/dateutil"
)

// Period is a maximal run of consecutive billable days within one month
type Period struct {
	Start  int  `json:"start"`
	End    int  `json:"end"`
	Length int  `json:"length"`
	Tier   Tier `json:"tier"`
}

func newPeriod(start, end int) Period {
	length := end - start + 1
	return Period{
		Start:  start,
		End:    end,
		Length: length,
		Tier:   ResolveTier(length),
	}
}

// Segment partitions the month into active periods separated by idle days.
// Idle markers outside the given month are ignored.
func Segment(idle DateSet, year int, month time.Month) []Period {
	total := dateutil.DaysInMonth(year, month)

	periods := []Period{}
	runStart := 0 // 0 means no open run

	for day := 1; day <= total; day++ {
		if idle.Has(dateutil.Date(year, month, day)) {
			if runStart != 0 {
				periods = append(periods, newPeriod(runStart, day-1))
				runStart = 0
			}
			continue
		}

		if runStart == 0 {
			runStart = day
		}
		if day == total {
			periods = append(periods, newPeriod(runStart, day))
		}
	}

	return periods
}
