package packets

import "github.com/Nixie-Tech-LLC/tawba/internal/model"

type LogResponse struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Prayer   string `json:"prayer"`
	Type     string `json:"type"`
	Count    int    `json:"count"`
	LoggedAt string `json:"logged_at"`
}

func NewLogResponse(l model.PrayerLog) LogResponse {
	return LogResponse{
		ID:       l.ID,
		Date:     l.Date,
		Prayer:   string(l.Prayer),
		Type:     string(l.Type),
		Count:    l.Count,
		LoggedAt: l.LoggedAt,
	}
}

// SummaryResponse is the dashboard payload: per-prayer debt plus totals.
type SummaryResponse struct {
	Summaries      []model.PrayerSummary `json:"summaries"`
	TotalRemaining int                   `json:"total_remaining"`
}

type EstimateHelperResponse struct {
	Years          float64 `json:"years"`
	EstimatedTotal int     `json:"estimated_total"`
	PerPrayer      int     `json:"per_prayer"`
}
