// Package endpoints exposes the qada-tracking API: log CRUD, estimates,
// onboarding, settings, and the derived summary/projection views.
package endpoints

import (
	"errors"
	"net/http"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	"github.com/Nixie-Tech-LLC/tawba/internal/logbook"
)

type TrackerController struct {
	store   db.Store
	logbook *logbook.Service
	clock   dates.Clock
}

func newTrackerController(store db.Store, clock dates.Clock) *TrackerController {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &TrackerController{
		store:   store,
		logbook: logbook.NewService(store, clock),
		clock:   clock,
	}
}

// LogModule mounts the prayer-log CRUD endpoints.
func LogModule(store db.Store, clock dates.Clock) api.Module {
	ctl := newTrackerController(store, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/logs", ctl.listLogs)
		c.GET("/logs/today", ctl.listTodayLogs)
		c.POST("/logs", ctl.createLog)
		c.PUT("/logs/:id", ctl.updateLog)
		c.DELETE("/logs/:id", ctl.deleteLog)
	})
}

// EstimateModule mounts the missed-estimate endpoints.
func EstimateModule(store db.Store, clock dates.Clock) api.Module {
	ctl := newTrackerController(store, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/estimates", ctl.listEstimates)
		c.PUT("/estimates/:prayer", ctl.upsertEstimate)
		c.POST("/estimates/:prayer/adjust", ctl.adjustEstimate)
		c.GET("/estimate-helper", ctl.estimateHelper)
		c.POST("/onboarding", ctl.completeOnboarding)
	})
}

// ProgressModule mounts the derived views: summary, projection, what-if.
func ProgressModule(store db.Store, clock dates.Clock) api.Module {
	ctl := newTrackerController(store, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/summary", ctl.getSummary)
		c.GET("/projection", ctl.getProjection)
		c.GET("/whatif", ctl.getWhatIf)
	})
}

// SettingsModule mounts settings read/update and the app reset.
func SettingsModule(store db.Store, clock dates.Clock) api.Module {
	ctl := newTrackerController(store, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.PUT("/settings", ctl.updateSettings)
		c.POST("/reset", ctl.resetApp)
	})
}

// mapLogbookError translates the service error taxonomy to HTTP. Duplicate
// and validation failures carry a kind so the client can show the specific
// message; store failures stay generic and retryable.
func mapLogbookError(err error) *api.APIError {
	switch {
	case errors.Is(err, logbook.ErrDuplicateLog):
		return &api.APIError{Code: http.StatusConflict, Message: "prayer already logged for this date", Kind: "duplicate_log"}
	case errors.Is(err, logbook.ErrLogNotFound):
		return &api.APIError{Code: http.StatusNotFound, Message: "log not found"}
	case logbook.IsValidation(err):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error(), Kind: "validation"}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "storage failure, try again"}
	}
}
