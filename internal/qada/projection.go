package qada

import (
	"math"
	"time"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// Project extrapolates the historical repayment rate into a completion date.
// With no start date or no qada history there is nothing to extrapolate and
// the zero projection (average 0, nil date) is returned.
//
// The start day itself counts as day one of history. The displayed average
// is rounded to two decimals, but the date math runs on the unrounded rate.
func Project(summaries []model.PrayerSummary, logs []model.PrayerLog, startDate *time.Time, today time.Time) model.ProgressProjection {
	totalQada := TotalQada(logs)
	if startDate == nil || totalQada == 0 {
		return model.ProgressProjection{}
	}

	days := dates.DayDiff(*startDate, today) + 1
	if days < 1 {
		days = 1
	}
	average := float64(totalQada) / float64(days)
	if average <= 0 {
		return model.ProgressProjection{}
	}

	remaining := TotalRemaining(summaries)
	daysToComplete := int(math.Ceil(float64(remaining) / average))
	date := dates.FormatISO(dates.StartOfDay(today).AddDate(0, 0, daysToComplete))

	return model.ProgressProjection{
		DailyAverage:            math.Round(average*100) / 100,
		ProjectedCompletionDate: &date,
	}
}

// WhatIf answers the interactive "at T repayments per prayer per day, when
// am I done?" calculator. Scope is either a single prayer or, when prayer is
// nil, all prayers; in the all-prayers case each prayer is repaid at rate T
// independently, so the slowest backlog gates completion.
//
// Rate must be >= 1; callers validate before reaching here, so a
// non-positive rate yields the zero-value result.
func WhatIf(summaries []model.PrayerSummary, prayer *model.Prayer, rate int, today time.Time) model.WhatIfResult {
	if rate <= 0 {
		return model.WhatIfResult{}
	}

	daysToClear := 0
	for _, s := range summaries {
		if prayer != nil && s.Prayer != *prayer {
			continue
		}
		d := 0
		if s.Remaining > 0 {
			d = int(math.Ceil(float64(s.Remaining) / float64(rate)))
		}
		if d > daysToClear {
			daysToClear = d
		}
	}

	if daysToClear == 0 {
		return model.WhatIfResult{AlreadyClear: true}
	}
	date := dates.FormatISO(dates.StartOfDay(today).AddDate(0, 0, daysToClear))
	return model.WhatIfResult{DaysToClear: daysToClear, ProjectedDate: &date}
}
