package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/athan"
	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
	"github.com/Nixie-Tech-LLC/tawba/internal/reminders"
)

type AthanController struct {
	store     db.Store
	client    *athan.Client
	publisher *reminders.Publisher
	clock     dates.Clock
}

// AthanModule mounts the daily timetable endpoints. publisher may be nil
// when no MQTT broker is configured; prompt scheduling is then disabled.
func AthanModule(store db.Store, client *athan.Client, publisher *reminders.Publisher, clock dates.Clock) api.Module {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	ctl := &AthanController{store: store, client: client, publisher: publisher, clock: clock}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/times", ctl.getTimes)
		c.POST("/prompts", ctl.schedulePrompts)
	})
}

// coordinates resolves lat/lon from query parameters, falling back to the
// user's stored location.
func (a *AthanController) coordinates(ctx *gin.Context, user *model.User) (float64, float64, *api.APIError) {
	latRaw, lonRaw := ctx.Query("lat"), ctx.Query("lon")
	if latRaw != "" || lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil || lonErr != nil {
			return 0, 0, &api.APIError{Code: http.StatusBadRequest, Message: "lat and lon must be numbers", Kind: "validation"}
		}
		return lat, lon, nil
	}

	settings, err := a.store.GetSettings(user.ID)
	if err != nil {
		return 0, 0, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}
	if settings.Location == nil {
		return 0, 0, &api.APIError{Code: http.StatusBadRequest, Message: "no location on file; pass lat and lon", Kind: "validation"}
	}
	return settings.Location.Latitude, settings.Location.Longitude, nil
}

// GET /api/athan/times?lat=..&lon=..&date=YYYY-MM-DD
func (a *AthanController) getTimes(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	lat, lon, apiErr := a.coordinates(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	date := ctx.Query("date")
	if date == "" {
		date = dates.TodayISO(a.clock)
	} else if _, err := dates.ParseISO(date); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD", Kind: "validation"}
	}

	table, err := a.client.Times(ctx.Request.Context(), lat, lon, date)
	if err != nil {
		log.Error().Err(err).Msg("timetable lookup failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "timetable service unavailable"}
	}
	return table, nil
}

// POST /api/athan/prompts
//
// Fetches today's timetable and queues post-prayer reminder prompts on the
// user's MQTT topic. Requires reminders to be enabled.
func (a *AthanController) schedulePrompts(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if a.publisher == nil {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "reminders are not configured"}
	}

	settings, err := a.store.GetSettings(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}
	if !settings.RemindersEnabled {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "reminders are disabled"}
	}

	lat, lon, apiErr := a.coordinates(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	table, err := a.client.Times(ctx.Request.Context(), lat, lon, dates.TodayISO(a.clock))
	if err != nil {
		log.Error().Err(err).Msg("timetable lookup failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "timetable service unavailable"}
	}

	scheduled := a.publisher.SchedulePrompts(user.ID, table)
	return gin.H{"scheduled": scheduled}, nil
}
