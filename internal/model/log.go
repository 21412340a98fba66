package model

// PrayerLog is a single user claim: either "I prayed <prayer> on time on
// <date>" (type=current, count=1) or "I repaid <count> missed <prayer>
// prayers on <date>" (type=qada).
type PrayerLog struct {
	ID       int     `db:"id"        json:"id"`
	UserID   int     `db:"user_id"   json:"-"`
	Date     string  `db:"date"      json:"date"` // YYYY-MM-DD
	Prayer   Prayer  `db:"prayer"    json:"prayer"`
	Type     LogType `db:"type"      json:"type"`
	Count    int     `db:"count"     json:"count"`
	LoggedAt string  `db:"logged_at" json:"logged_at"` // HH:MM time of day
}

// MissedEstimate is the user's onboarding-time estimate of how many prayers
// of one kind they had already missed before tracking began. One row per
// prayer per user; never negative.
type MissedEstimate struct {
	UserID       int    `db:"user_id"       json:"-"`
	Prayer       Prayer `db:"prayer"        json:"prayer"`
	InitialCount int    `db:"initial_count" json:"initial_count"`
}
