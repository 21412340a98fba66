package model

// PrayerTime is one entry of a daily timetable, as served by the athan API.
type PrayerTime struct {
	Prayer Prayer `json:"prayer"`
	Time   string `json:"time"` // "05:12", 24h local time
}

// Timetable is the five prayer times for one date at one location.
type Timetable struct {
	Date      string       `json:"date"` // YYYY-MM-DD
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Times     []PrayerTime `json:"times"`
}
