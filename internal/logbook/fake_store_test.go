package logbook_test

import (
	"errors"
	"sort"

	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// fakeStore is an in-memory db.Store for unit tests. failNext makes the
// next call fail, for store-error propagation tests.
type fakeStore struct {
	nextID    int
	logs      map[int]model.PrayerLog
	estimates map[model.Prayer]model.MissedEstimate
	settings  map[string]*string
	failNext  error
}

var _ db.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:    1,
		logs:      map[int]model.PrayerLog{},
		estimates: map[model.Prayer]model.MissedEstimate{},
		settings:  map[string]*string{},
	}
}

func (f *fakeStore) fail() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeStore) CreateUser(string, string, *string) (int, error) { return 1, nil }
func (f *fakeStore) GetUserByEmail(string) (*model.User, error)      { return nil, nil }
func (f *fakeStore) GetUserByID(int) (*model.User, error)            { return nil, errors.New("not implemented") }
func (f *fakeStore) UpdateUserProfile(int, string, *string) error    { return nil }

func (f *fakeStore) GetSettings(int) (model.Settings, error) {
	if err := f.fail(); err != nil {
		return model.Settings{}, err
	}
	settings := model.DefaultSettings()
	if v := f.settings[db.SettingStartDate]; v != nil {
		settings.StartDate = v
	}
	return settings, nil
}

func (f *fakeStore) SetSetting(_ int, key string, value *string) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.settings[key] = value
	return nil
}

func (f *fakeStore) EnsureDefaultSettings(int) error { return nil }

func (f *fakeStore) ListEstimates(int) ([]model.MissedEstimate, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	out := make([]model.MissedEstimate, 0, len(f.estimates))
	for _, e := range f.estimates {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prayer < out[j].Prayer })
	return out, nil
}

func (f *fakeStore) UpsertEstimate(estimate model.MissedEstimate) error {
	f.estimates[estimate.Prayer] = estimate
	return nil
}

func (f *fakeStore) ReplaceEstimates(_ int, estimates []model.MissedEstimate) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.estimates = map[model.Prayer]model.MissedEstimate{}
	for _, e := range estimates {
		f.estimates[e.Prayer] = e
	}
	return nil
}

func (f *fakeStore) AdjustEstimate(userID int, prayer model.Prayer, delta int) error {
	if err := f.fail(); err != nil {
		return err
	}
	e := f.estimates[prayer]
	e.UserID = userID
	e.Prayer = prayer
	e.InitialCount += delta
	if e.InitialCount < 0 {
		e.InitialCount = 0
	}
	f.estimates[prayer] = e
	return nil
}

func (f *fakeStore) ListLogs(int) ([]model.PrayerLog, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	out := make([]model.PrayerLog, 0, len(f.logs))
	for _, l := range f.logs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListLogsForDate(_ int, date string) ([]model.PrayerLog, error) {
	var out []model.PrayerLog
	for _, l := range f.logs {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetLogByID(_, id int) (*model.PrayerLog, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	l, ok := f.logs[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeStore) CurrentLogExists(_ int, date string, prayer model.Prayer, exceptID int) (bool, error) {
	if err := f.fail(); err != nil {
		return false, err
	}
	for _, l := range f.logs {
		if l.Date == date && l.Prayer == prayer && l.Type == model.LogCurrent && l.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertLog(entry model.PrayerLog) (int, error) {
	if err := f.fail(); err != nil {
		return 0, err
	}
	entry.ID = f.nextID
	f.nextID++
	f.logs[entry.ID] = entry
	return entry.ID, nil
}

func (f *fakeStore) UpdateLog(entry model.PrayerLog) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.logs[entry.ID] = entry
	return nil
}

func (f *fakeStore) DeleteLog(_, id int) error {
	if err := f.fail(); err != nil {
		return err
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeStore) ResetUserData(int) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.logs = map[int]model.PrayerLog{}
	f.estimates = map[model.Prayer]model.MissedEstimate{}
	f.settings = map[string]*string{}
	return nil
}
