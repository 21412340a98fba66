package logbook_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/logbook"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

const userID = 1

func newService(store *fakeStore) *logbook.Service {
	clock := dates.FixedClock{T: time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)}
	return logbook.NewService(store, clock)
}

func TestAddLogPersistsAndReturnsID(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	id, err := svc.AddLog(userID, model.PrayerLog{
		Date:   "2024-03-01",
		Prayer: model.Asr,
		Type:   model.LogCurrent,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	saved := store.logs[id]
	assert.Equal(t, 1, saved.Count, "current logs always carry count 1")
	assert.Equal(t, userID, saved.UserID)
}

func TestAddLogRejectsDuplicateCurrent(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	entry := model.PrayerLog{Date: "2024-03-01", Prayer: model.Asr, Type: model.LogCurrent}
	_, err := svc.AddLog(userID, entry)
	require.NoError(t, err)

	_, err = svc.AddLog(userID, entry)
	assert.ErrorIs(t, err, logbook.ErrDuplicateLog)
	assert.Len(t, store.logs, 1, "failed insert must not alter stored state")

	// a qada entry for the same slot is fine
	_, err = svc.AddLog(userID, model.PrayerLog{
		Date: "2024-03-01", Prayer: model.Asr, Type: model.LogQada, Count: 3,
	})
	assert.NoError(t, err)
}

func TestAddLogDefaultsDateAndTimeFromClock(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	id, err := svc.AddLog(userID, model.PrayerLog{Prayer: model.Fajr, Type: model.LogQada, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", store.logs[id].Date)
	assert.Equal(t, "14:30", store.logs[id].LoggedAt)
}

func TestAddLogValidation(t *testing.T) {
	svc := newService(newFakeStore())

	cases := []struct {
		name  string
		entry model.PrayerLog
	}{
		{"unknown prayer", model.PrayerLog{Date: "2024-03-01", Prayer: "vespers", Type: model.LogQada, Count: 1}},
		{"unknown type", model.PrayerLog{Date: "2024-03-01", Prayer: model.Fajr, Type: "bonus", Count: 1}},
		{"zero qada count", model.PrayerLog{Date: "2024-03-01", Prayer: model.Fajr, Type: model.LogQada, Count: 0}},
		{"negative qada count", model.PrayerLog{Date: "2024-03-01", Prayer: model.Fajr, Type: model.LogQada, Count: -4}},
		{"malformed date", model.PrayerLog{Date: "yesterday", Prayer: model.Fajr, Type: model.LogQada, Count: 1}},
		{"malformed time", model.PrayerLog{Date: "2024-03-01", LoggedAt: "noonish", Prayer: model.Fajr, Type: model.LogQada, Count: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddLog(userID, tc.entry)
			assert.True(t, logbook.IsValidation(err), "want ValidationError, got %v", err)
		})
	}
}

func TestEditLogReValidatesDuplicateRule(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	currentID, err := svc.AddLog(userID, model.PrayerLog{Date: "2024-03-01", Prayer: model.Asr, Type: model.LogCurrent})
	require.NoError(t, err)
	qadaID, err := svc.AddLog(userID, model.PrayerLog{Date: "2024-03-01", Prayer: model.Asr, Type: model.LogQada, Count: 2})
	require.NoError(t, err)

	// turning the qada entry into a second current claim must fail
	err = svc.EditLog(userID, model.PrayerLog{
		ID: qadaID, Date: "2024-03-01", Prayer: model.Asr, Type: model.LogCurrent, LoggedAt: "10:00",
	})
	assert.ErrorIs(t, err, logbook.ErrDuplicateLog)

	// editing the current entry in place must not collide with itself
	err = svc.EditLog(userID, model.PrayerLog{
		ID: currentID, Date: "2024-03-01", Prayer: model.Asr, Type: model.LogCurrent, LoggedAt: "06:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, "06:00", store.logs[currentID].LoggedAt)
}

func TestEditLogUnknownID(t *testing.T) {
	svc := newService(newFakeStore())
	err := svc.EditLog(userID, model.PrayerLog{
		ID: 99, Date: "2024-03-01", Prayer: model.Asr, Type: model.LogQada, Count: 1, LoggedAt: "10:00",
	})
	assert.ErrorIs(t, err, logbook.ErrLogNotFound)
}

func TestRemoveLogIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	id, err := svc.AddLog(userID, model.PrayerLog{Date: "2024-03-01", Prayer: model.Isha, Type: model.LogQada, Count: 1})
	require.NoError(t, err)

	assert.NoError(t, svc.RemoveLog(userID, id))
	assert.NoError(t, svc.RemoveLog(userID, id))
	assert.Empty(t, store.logs)
}

func TestCompleteOnboarding(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	err := svc.CompleteOnboarding(userID, "2024-01-01", []model.MissedEstimate{
		{Prayer: model.Fajr, InitialCount: 100},
		{Prayer: model.Dhuhr, InitialCount: -5},
	})
	require.NoError(t, err)

	require.NotNil(t, store.settings["start_date"])
	assert.Equal(t, "2024-01-01", *store.settings["start_date"])
	assert.Equal(t, 100, store.estimates[model.Fajr].InitialCount)
	assert.Equal(t, 0, store.estimates[model.Dhuhr].InitialCount, "negative estimate clamps to zero")

	err = svc.CompleteOnboarding(userID, "01/01/2024", nil)
	assert.True(t, logbook.IsValidation(err))
}

func TestAdjustEstimateClampsAtZero(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	// no prior estimate row exists; the adjustment creates it
	require.NoError(t, svc.AdjustEstimate(userID, model.Maghrib, 2))
	assert.Equal(t, 2, store.estimates[model.Maghrib].InitialCount)

	require.NoError(t, svc.AdjustEstimate(userID, model.Maghrib, -10))
	assert.Equal(t, 0, store.estimates[model.Maghrib].InitialCount)

	err := svc.AdjustEstimate(userID, "brunch", 1)
	assert.True(t, logbook.IsValidation(err))
}

func TestStoreErrorsPropagate(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	boom := errors.New("connection reset")
	store.failNext = boom

	_, err := svc.AddLog(userID, model.PrayerLog{Date: "2024-03-01", Prayer: model.Fajr, Type: model.LogCurrent})
	assert.ErrorIs(t, err, boom)
	assert.False(t, logbook.IsValidation(err))
	assert.NotErrorIs(t, err, logbook.ErrDuplicateLog)
}

func TestLoadSnapshotParsesStartDate(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	require.NoError(t, svc.CompleteOnboarding(userID, "2024-02-10", nil))

	snap, err := svc.Load(userID)
	require.NoError(t, err)
	require.NotNil(t, snap.StartDate)
	assert.Equal(t, "2024-02-10", dates.FormatISO(*snap.StartDate))
	assert.Equal(t, "2024-03-01", dates.FormatISO(snap.Today))
}
