package db

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// Setting keys as stored in the settings table.
const (
	SettingLanguage         = "language"
	SettingFontSize         = "font_size"
	SettingStartDate        = "start_date"
	SettingRemindersEnabled = "reminders_enabled"
	SettingLocation         = "location"
)

type settingRow struct {
	Key   string  `db:"key"`
	Value *string `db:"value"`
}

func (s *pgStore) GetSettings(userID int) (model.Settings, error) {
	var rows []settingRow
	err := s.db.Select(&rows, `
		SELECT key, value
		FROM settings
		WHERE user_id = $1
		`, userID)
	if err != nil {
		return model.Settings{}, err
	}

	settings := model.DefaultSettings()
	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		switch row.Key {
		case SettingLanguage:
			settings.Language = *row.Value
		case SettingFontSize:
			settings.FontSize = *row.Value
		case SettingStartDate:
			v := *row.Value
			settings.StartDate = &v
		case SettingRemindersEnabled:
			settings.RemindersEnabled = *row.Value == "1"
		case SettingLocation:
			var loc model.Location
			if err := json.Unmarshal([]byte(*row.Value), &loc); err != nil {
				log.Warn().Err(err).Int("user_id", userID).Msg("discarding malformed stored location")
				continue
			}
			settings.Location = &loc
		}
	}
	return settings, nil
}

func (s *pgStore) SetSetting(userID int, key string, value *string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (user_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value
		`, userID, key, value)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Str("key", key).Msg("failed to set setting")
	}
	return err
}

// EnsureDefaultSettings seeds the default rows for a new user without
// overwriting anything already stored.
func (s *pgStore) EnsureDefaultSettings(userID int) error {
	defaults := model.DefaultSettings()
	enabled := "0"
	if defaults.RemindersEnabled {
		enabled = "1"
	}
	lang := defaults.Language
	size := defaults.FontSize
	rows := []settingRow{
		{Key: SettingLanguage, Value: &lang},
		{Key: SettingFontSize, Value: &size},
		{Key: SettingStartDate, Value: nil},
		{Key: SettingRemindersEnabled, Value: &enabled},
		{Key: SettingLocation, Value: nil},
	}
	for _, row := range rows {
		_, err := s.db.Exec(`
			INSERT INTO settings (user_id, key, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, key) DO NOTHING
			`, userID, row.Key, row.Value)
		if err != nil {
			return err
		}
	}
	return nil
}
