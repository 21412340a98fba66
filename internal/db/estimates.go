package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

func (s *pgStore) ListEstimates(userID int) ([]model.MissedEstimate, error) {
	var estimates []model.MissedEstimate
	err := s.db.Select(&estimates, `
		SELECT user_id, prayer, initial_count
		FROM missed_estimates
		WHERE user_id = $1
		ORDER BY prayer
		`, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list estimates")
		return nil, err
	}
	return estimates, nil
}

func (s *pgStore) UpsertEstimate(estimate model.MissedEstimate) error {
	_, err := s.db.Exec(`
		INSERT INTO missed_estimates (user_id, prayer, initial_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, prayer) DO UPDATE SET initial_count = excluded.initial_count
		`, estimate.UserID, estimate.Prayer, estimate.InitialCount)
	if err != nil {
		log.Error().Err(err).Str("prayer", string(estimate.Prayer)).Msg("failed to upsert estimate")
	}
	return err
}

// ReplaceEstimates swaps the whole estimate set atomically (onboarding).
func (s *pgStore) ReplaceEstimates(userID int, estimates []model.MissedEstimate) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM missed_estimates WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, estimate := range estimates {
		_, err := tx.Exec(`
			INSERT INTO missed_estimates (user_id, prayer, initial_count)
			VALUES ($1, $2, $3)
			`, userID, estimate.Prayer, estimate.InitialCount)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AdjustEstimate shifts one estimate by delta, clamping at zero in SQL so
// concurrent adjustments cannot drive the count negative. The insert arm
// covers prayers that were never estimated, so an adjustment always lands
// on a row.
func (s *pgStore) AdjustEstimate(userID int, prayer model.Prayer, delta int) error {
	_, err := s.db.Exec(`
		INSERT INTO missed_estimates (user_id, prayer, initial_count)
		VALUES ($1, $2, GREATEST($3, 0))
		ON CONFLICT (user_id, prayer)
		DO UPDATE SET initial_count = GREATEST(missed_estimates.initial_count + $3, 0)
		`, userID, prayer, delta)
	if err != nil {
		log.Error().Err(err).Str("prayer", string(prayer)).Msg("failed to adjust estimate")
	}
	return err
}
