package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

const logColumns = `id, user_id, date, prayer, type, count, logged_at`

func (s *pgStore) ListLogs(userID int) ([]model.PrayerLog, error) {
	var logs []model.PrayerLog
	err := s.db.Select(&logs, `
		SELECT `+logColumns+`
		FROM prayer_logs
		WHERE user_id = $1
		ORDER BY date DESC, logged_at DESC, id DESC
		`, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list prayer logs")
		return nil, err
	}
	return logs, nil
}

func (s *pgStore) ListLogsForDate(userID int, date string) ([]model.PrayerLog, error) {
	var logs []model.PrayerLog
	err := s.db.Select(&logs, `
		SELECT `+logColumns+`
		FROM prayer_logs
		WHERE user_id = $1 AND date = $2
		ORDER BY logged_at DESC, id DESC
		`, userID, date)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *pgStore) GetLogByID(userID, id int) (*model.PrayerLog, error) {
	var entry model.PrayerLog
	err := s.db.Get(&entry, `
		SELECT `+logColumns+`
		FROM prayer_logs
		WHERE user_id = $1 AND id = $2
		`, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CurrentLogExists reports whether a current-type log already exists for
// (date, prayer). exceptID excludes one row so edits don't collide with
// themselves; pass 0 on insert.
func (s *pgStore) CurrentLogExists(userID int, date string, prayer model.Prayer, exceptID int) (bool, error) {
	var exists bool
	err := s.db.Get(&exists, `
		SELECT EXISTS (
			SELECT 1 FROM prayer_logs
			WHERE user_id = $1 AND date = $2 AND prayer = $3 AND type = 'current' AND id <> $4
		)
		`, userID, date, prayer, exceptID)
	return exists, err
}

func (s *pgStore) InsertLog(entry model.PrayerLog) (int, error) {
	var id int
	err := s.db.Get(&id, `
		INSERT INTO prayer_logs (user_id, date, prayer, type, count, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
		`, entry.UserID, entry.Date, entry.Prayer, entry.Type, entry.Count, entry.LoggedAt)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert prayer log")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) UpdateLog(entry model.PrayerLog) error {
	_, err := s.db.Exec(`
		UPDATE prayer_logs
		SET date = $3, prayer = $4, type = $5, count = $6, logged_at = $7
		WHERE user_id = $1 AND id = $2
		`, entry.UserID, entry.ID, entry.Date, entry.Prayer, entry.Type, entry.Count, entry.LoggedAt)
	if err != nil {
		log.Error().Err(err).Int("id", entry.ID).Msg("failed to update prayer log")
	}
	return err
}

func (s *pgStore) DeleteLog(userID, id int) error {
	_, err := s.db.Exec(`DELETE FROM prayer_logs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		log.Error().Err(err).Int("id", id).Msg("failed to delete prayer log")
	}
	return err
}

// ResetUserData wipes a user's logs, estimates and settings in one
// transaction (the in-app "reset" action).
func (s *pgStore) ResetUserData(userID int) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM prayer_logs WHERE user_id = $1`,
		`DELETE FROM missed_estimates WHERE user_id = $1`,
		`DELETE FROM settings WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(stmt, userID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
