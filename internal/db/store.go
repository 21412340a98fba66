package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// Store is the durable record interface handed to API modules and services.
// The engine packages never touch it directly; they are fed snapshots read
// through it.
type Store interface {
	// user accounts
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// per-user settings
	GetSettings(userID int) (model.Settings, error)
	SetSetting(userID int, key string, value *string) error
	EnsureDefaultSettings(userID int) error

	// missed estimates
	ListEstimates(userID int) ([]model.MissedEstimate, error)
	UpsertEstimate(estimate model.MissedEstimate) error
	ReplaceEstimates(userID int, estimates []model.MissedEstimate) error
	AdjustEstimate(userID int, prayer model.Prayer, delta int) error

	// prayer logs
	ListLogs(userID int) ([]model.PrayerLog, error)
	ListLogsForDate(userID int, date string) ([]model.PrayerLog, error)
	GetLogByID(userID, id int) (*model.PrayerLog, error)
	CurrentLogExists(userID int, date string, prayer model.Prayer, exceptID int) (bool, error)
	InsertLog(entry model.PrayerLog) (int, error)
	UpdateLog(entry model.PrayerLog) error
	DeleteLog(userID, id int) error

	// wipes logs, estimates and settings for one user (app reset)
	ResetUserData(userID int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}
