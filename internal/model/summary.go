package model

// PrayerSummary is the derived per-prayer debt view. It is never persisted;
// it is recomputed from estimates + logs + start date on every read.
type PrayerSummary struct {
	Prayer             Prayer `json:"prayer"`
	InitialCount       int    `json:"initial_count"`
	TotalQadaPrayed    int    `json:"total_qada_prayed"`
	TotalCurrentPrayed int    `json:"total_current_prayed"`
	MissedTotal        int    `json:"missed_total"`
	Remaining          int    `json:"remaining"`
}

// ProgressProjection extrapolates the historical repayment rate into a
// completion date. A zero average with a nil date means there is not enough
// history to project.
type ProgressProjection struct {
	DailyAverage            float64 `json:"daily_average"`
	ProjectedCompletionDate *string `json:"projected_completion_date"` // YYYY-MM-DD
}

// WhatIfResult answers "if I repay at rate T per prayer per day, when am I
// done?". AlreadyClear is set instead of a date when nothing remains.
type WhatIfResult struct {
	DaysToClear   int     `json:"days_to_clear"`
	ProjectedDate *string `json:"projected_date"` // YYYY-MM-DD, nil when already clear
	AlreadyClear  bool    `json:"already_clear"`
}
