// Package qada is the debt accounting and projection engine. Every function
// is a pure transform over a snapshot of estimates, logs, the tracking start
// date and an explicit "today" — no storage access, no clock reads, no state
// between calls.
package qada

import (
	"time"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// Summarize derives the per-prayer debt view, one entry per prayer in
// canonical order.
//
// Missed-if-no-current-log rule: every calendar day since startDate owes one
// on-time prayer of each kind; an elapsed day with no matching current log
// is presumed missed and added to the backlog. Current logs are counted per
// distinct day, so a stray duplicate row can never be counted twice.
//
// A prayer with no estimate row starts from zero. Over-repayment clamps
// remaining at zero; surplus is not carried forward.
func Summarize(estimates []model.MissedEstimate, logs []model.PrayerLog, startDate *time.Time, today time.Time) []model.PrayerSummary {
	daysSinceStart := 0
	if startDate != nil {
		if d := dates.DayDiff(*startDate, today); d > 0 {
			daysSinceStart = d
		}
	}

	summaries := make([]model.PrayerSummary, 0, len(model.PrayerOrder))
	for _, prayer := range model.PrayerOrder {
		initial := 0
		for _, e := range estimates {
			if e.Prayer == prayer {
				initial = e.InitialCount
				break
			}
		}

		totalQada := 0
		currentDays := map[string]struct{}{}
		for _, l := range logs {
			if l.Prayer != prayer {
				continue
			}
			switch l.Type {
			case model.LogQada:
				totalQada += l.Count
			case model.LogCurrent:
				currentDays[l.Date] = struct{}{}
			}
		}
		totalCurrent := len(currentDays)

		missedSinceStart := daysSinceStart - totalCurrent
		if missedSinceStart < 0 {
			missedSinceStart = 0
		}
		missedTotal := initial + missedSinceStart
		remaining := missedTotal - totalQada
		if remaining < 0 {
			remaining = 0
		}

		summaries = append(summaries, model.PrayerSummary{
			Prayer:             prayer,
			InitialCount:       initial,
			TotalQadaPrayed:    totalQada,
			TotalCurrentPrayed: totalCurrent,
			MissedTotal:        missedTotal,
			Remaining:          remaining,
		})
	}
	return summaries
}

// TotalRemaining sums outstanding debt across summaries.
func TotalRemaining(summaries []model.PrayerSummary) int {
	total := 0
	for _, s := range summaries {
		total += s.Remaining
	}
	return total
}

// TotalQada sums repaid counts over all qada logs.
func TotalQada(logs []model.PrayerLog) int {
	total := 0
	for _, l := range logs {
		if l.Type == model.LogQada {
			total += l.Count
		}
	}
	return total
}
