package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// GET /api/tracker/logs
func (t *TrackerController) listLogs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	logs, err := t.store.ListLogs(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list logs"}
	}

	out := make([]packets.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, packets.NewLogResponse(l))
	}
	return out, nil
}

// GET /api/tracker/logs/today
func (t *TrackerController) listTodayLogs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	logs, err := t.store.ListLogsForDate(user.ID, dates.TodayISO(t.clock))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list logs"}
	}

	out := make([]packets.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, packets.NewLogResponse(l))
	}
	return out, nil
}

// POST /api/tracker/logs
func (t *TrackerController) createLog(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateLogRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	id, err := t.logbook.AddLog(user.ID, model.PrayerLog{
		Date:     request.Date,
		Prayer:   model.Prayer(request.Prayer),
		Type:     model.LogType(request.Type),
		Count:    request.Count,
		LoggedAt: request.LoggedAt,
	})
	if err != nil {
		return nil, mapLogbookError(err)
	}

	entry, err := t.store.GetLogByID(user.ID, id)
	if err != nil || entry == nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch created log"}
	}
	return packets.NewLogResponse(*entry), nil
}

// PUT /api/tracker/logs/:id
func (t *TrackerController) updateLog(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("id_raw", ctx.Param("id")).Msg("invalid log id in request")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateLogRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	existing, err := t.store.GetLogByID(user.ID, id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch log"}
	}
	if existing == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "log not found"}
	}

	// merge supplied fields onto the stored record
	merged := *existing
	if request.Date != nil {
		merged.Date = *request.Date
	}
	if request.Prayer != nil {
		merged.Prayer = model.Prayer(*request.Prayer)
	}
	if request.Type != nil {
		merged.Type = model.LogType(*request.Type)
	}
	if request.Count != nil {
		merged.Count = *request.Count
	}
	if request.LoggedAt != nil {
		merged.LoggedAt = *request.LoggedAt
	}

	if err := t.logbook.EditLog(user.ID, merged); err != nil {
		return nil, mapLogbookError(err)
	}

	updated, err := t.store.GetLogByID(user.ID, id)
	if err != nil || updated == nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch updated log"}
	}
	return packets.NewLogResponse(*updated), nil
}

// DELETE /api/tracker/logs/:id
func (t *TrackerController) deleteLog(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := t.logbook.RemoveLog(user.ID, id); err != nil {
		return nil, mapLogbookError(err)
	}
	return gin.H{"deleted": id}, nil
}
