package packets

import "github.com/Nixie-Tech-LLC/tawba/internal/model"

type CreateLogRequest struct {
	Date     string `json:"date"`   // defaults to today
	Prayer   string `json:"prayer" binding:"required"`
	Type     string `json:"type"   binding:"required"`
	Count    int    `json:"count"` // ignored for current logs
	LoggedAt string `json:"logged_at"`
}

// UpdateLogRequest carries only the fields being changed; nil fields keep
// the stored value.
type UpdateLogRequest struct {
	Date     *string `json:"date"`
	Prayer   *string `json:"prayer"`
	Type     *string `json:"type"`
	Count    *int    `json:"count"`
	LoggedAt *string `json:"logged_at"`
}

type EstimateEntry struct {
	Prayer       string `json:"prayer" binding:"required"`
	InitialCount int    `json:"initial_count"`
}

type OnboardingRequest struct {
	StartDate string          `json:"start_date" binding:"required"`
	Estimates []EstimateEntry `json:"estimates" binding:"required"`
}

type UpsertEstimateRequest struct {
	InitialCount int `json:"initial_count" binding:"gte=0"`
}

type AdjustEstimateRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type UpdateSettingsRequest struct {
	Language         *string         `json:"language" binding:"omitempty,oneof=en ar"`
	FontSize         *string         `json:"font_size" binding:"omitempty,oneof=small medium large"`
	RemindersEnabled *bool           `json:"reminders_enabled"`
	Location         *model.Location `json:"location"`
}
