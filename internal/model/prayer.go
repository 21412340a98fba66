package model

import "fmt"

// Prayer is one of the five daily prayers.
type Prayer string

const (
	Fajr    Prayer = "fajr"
	Dhuhr   Prayer = "dhuhr"
	Asr     Prayer = "asr"
	Maghrib Prayer = "maghrib"
	Isha    Prayer = "isha"
)

// PrayerOrder is the canonical display/iteration order.
var PrayerOrder = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

// ParsePrayer validates a raw prayer name. Unknown names are rejected so a
// typo can never silently under-count a prayer.
func ParsePrayer(s string) (Prayer, error) {
	switch Prayer(s) {
	case Fajr, Dhuhr, Asr, Maghrib, Isha:
		return Prayer(s), nil
	}
	return "", fmt.Errorf("unknown prayer %q", s)
}

// LogType says what a prayer log claims: an on-time prayer for its date, or
// a repayment of N missed prayers.
type LogType string

const (
	// LogCurrent marks a prayer performed on time; count is always 1.
	LogCurrent LogType = "current"
	// LogQada marks repayment of missed prayers; count is >= 1.
	LogQada LogType = "qada"
)

func ParseLogType(s string) (LogType, error) {
	switch LogType(s) {
	case LogCurrent, LogQada:
		return LogType(s), nil
	}
	return "", fmt.Errorf("unknown log type %q", s)
}
