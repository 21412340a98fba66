// Package logbook owns every mutation of prayer logs and estimates. It
// enforces the log invariants (at most one on-time claim per prayer per day,
// positive qada counts) before anything reaches the store, and hands out the
// snapshots the accounting engine is fed with.
package logbook

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

type Service struct {
	store db.Store
	clock dates.Clock
}

func NewService(store db.Store, clock dates.Clock) *Service {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &Service{store: store, clock: clock}
}

// Snapshot is the full per-user state the engines compute over.
type Snapshot struct {
	Settings  model.Settings
	Estimates []model.MissedEstimate
	Logs      []model.PrayerLog
	StartDate *time.Time
	Today     time.Time
}

// Load reads a consistent snapshot for one user. Summaries and projections
// are always recomputed from a fresh snapshot, never cached.
func (s *Service) Load(userID int) (*Snapshot, error) {
	settings, err := s.store.GetSettings(userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	estimates, err := s.store.ListEstimates(userID)
	if err != nil {
		return nil, fmt.Errorf("load estimates: %w", err)
	}
	logs, err := s.store.ListLogs(userID)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}

	var startDate *time.Time
	if settings.StartDate != nil {
		parsed, err := dates.ParseISO(*settings.StartDate)
		if err != nil {
			return nil, fmt.Errorf("stored start date %q: %w", *settings.StartDate, err)
		}
		startDate = &parsed
	}

	return &Snapshot{
		Settings:  settings,
		Estimates: estimates,
		Logs:      logs,
		StartDate: startDate,
		Today:     s.clock.Now(),
	}, nil
}

// AddLog validates and persists a new log entry, returning its id. A second
// current-type entry for the same (date, prayer) fails with ErrDuplicateLog
// and leaves the store untouched.
func (s *Service) AddLog(userID int, entry model.PrayerLog) (int, error) {
	entry.UserID = userID
	if entry.Date == "" {
		entry.Date = dates.TodayISO(s.clock)
	}
	if entry.LoggedAt == "" {
		entry.LoggedAt = dates.TimeNow(s.clock)
	}
	if err := validate(&entry); err != nil {
		return 0, err
	}

	if entry.Type == model.LogCurrent {
		exists, err := s.store.CurrentLogExists(userID, entry.Date, entry.Prayer, 0)
		if err != nil {
			return 0, fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			return 0, ErrDuplicateLog
		}
	}

	id, err := s.store.InsertLog(entry)
	if err != nil {
		return 0, fmt.Errorf("insert log: %w", err)
	}
	log.Info().Int("id", id).Str("prayer", string(entry.Prayer)).Str("type", string(entry.Type)).Msg("prayer log added")
	return id, nil
}

// EditLog replaces an existing entry. The duplicate rule is re-checked so an
// edit cannot turn a qada entry into a second on-time claim for a day that
// already has one.
func (s *Service) EditLog(userID int, entry model.PrayerLog) error {
	entry.UserID = userID
	existing, err := s.store.GetLogByID(userID, entry.ID)
	if err != nil {
		return fmt.Errorf("fetch log %d: %w", entry.ID, err)
	}
	if existing == nil {
		return ErrLogNotFound
	}

	if err := validate(&entry); err != nil {
		return err
	}
	if entry.Type == model.LogCurrent {
		exists, err := s.store.CurrentLogExists(userID, entry.Date, entry.Prayer, entry.ID)
		if err != nil {
			return fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			return ErrDuplicateLog
		}
	}

	if err := s.store.UpdateLog(entry); err != nil {
		return fmt.Errorf("update log %d: %w", entry.ID, err)
	}
	return nil
}

// RemoveLog deletes by id. Deleting an id that is already gone is a no-op.
func (s *Service) RemoveLog(userID, id int) error {
	if err := s.store.DeleteLog(userID, id); err != nil {
		return fmt.Errorf("delete log %d: %w", id, err)
	}
	return nil
}

// CompleteOnboarding sets the tracking start date and replaces the whole
// estimate set. Negative estimate counts clamp to zero.
func (s *Service) CompleteOnboarding(userID int, startDate string, estimates []model.MissedEstimate) error {
	if _, err := dates.ParseISO(startDate); err != nil {
		return &ValidationError{Field: "start_date", Reason: "must be YYYY-MM-DD"}
	}
	for i := range estimates {
		if _, err := model.ParsePrayer(string(estimates[i].Prayer)); err != nil {
			return &ValidationError{Field: "prayer", Reason: err.Error()}
		}
		estimates[i].UserID = userID
		if estimates[i].InitialCount < 0 {
			estimates[i].InitialCount = 0
		}
	}

	if err := s.store.SetSetting(userID, db.SettingStartDate, &startDate); err != nil {
		return fmt.Errorf("set start date: %w", err)
	}
	if err := s.store.ReplaceEstimates(userID, estimates); err != nil {
		return fmt.Errorf("replace estimates: %w", err)
	}
	log.Info().Int("user_id", userID).Str("start_date", startDate).Msg("onboarding completed")
	return nil
}

// AdjustEstimate shifts one prayer's initial estimate (e.g. "also missed
// today" adds 1). The store clamps the result at zero.
func (s *Service) AdjustEstimate(userID int, prayer model.Prayer, delta int) error {
	if _, err := model.ParsePrayer(string(prayer)); err != nil {
		return &ValidationError{Field: "prayer", Reason: err.Error()}
	}
	if err := s.store.AdjustEstimate(userID, prayer, delta); err != nil {
		return fmt.Errorf("adjust estimate: %w", err)
	}
	return nil
}

// Reset wipes logs, estimates and settings and reseeds the defaults.
func (s *Service) Reset(userID int) error {
	if err := s.store.ResetUserData(userID); err != nil {
		return fmt.Errorf("reset user data: %w", err)
	}
	if err := s.store.EnsureDefaultSettings(userID); err != nil {
		return fmt.Errorf("reseed settings: %w", err)
	}
	log.Info().Int("user_id", userID).Msg("user data reset")
	return nil
}

// validate checks structural invariants and normalizes counts: a current
// entry always carries count 1, a qada entry needs an explicit count >= 1.
func validate(entry *model.PrayerLog) error {
	if _, err := model.ParsePrayer(string(entry.Prayer)); err != nil {
		return &ValidationError{Field: "prayer", Reason: err.Error()}
	}
	if _, err := model.ParseLogType(string(entry.Type)); err != nil {
		return &ValidationError{Field: "type", Reason: err.Error()}
	}
	if _, err := dates.ParseISO(entry.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", entry.LoggedAt); err != nil {
		return &ValidationError{Field: "logged_at", Reason: "must be HH:MM"}
	}

	switch entry.Type {
	case model.LogCurrent:
		entry.Count = 1
	case model.LogQada:
		if entry.Count < 1 {
			return &ValidationError{Field: "count", Reason: "must be a positive integer"}
		}
	}
	return nil
}
