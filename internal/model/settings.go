package model

// Location is the device coordinates used for timetable lookups.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Settings holds per-user preferences. StartDate anchors all elapsed-day
// math; it is nil until onboarding completes and cleared only by a reset.
type Settings struct {
	Language         string    `json:"language"`
	FontSize         string    `json:"font_size"`
	StartDate        *string   `json:"start_date"` // YYYY-MM-DD
	RemindersEnabled bool      `json:"reminders_enabled"`
	Location         *Location `json:"location"`
}

// DefaultSettings are seeded for every new user.
func DefaultSettings() Settings {
	return Settings{
		Language:         "en",
		FontSize:         "medium",
		StartDate:        nil,
		RemindersEnabled: true,
		Location:         nil,
	}
}
