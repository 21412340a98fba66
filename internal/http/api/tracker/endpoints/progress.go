package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
	"github.com/Nixie-Tech-LLC/tawba/internal/qada"
)

// GET /api/tracker/summary
func (t *TrackerController) getSummary(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	snap, err := t.logbook.Load(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load tracking data"}
	}

	summaries := qada.Summarize(snap.Estimates, snap.Logs, snap.StartDate, snap.Today)
	return packets.SummaryResponse{
		Summaries:      summaries,
		TotalRemaining: qada.TotalRemaining(summaries),
	}, nil
}

// GET /api/tracker/projection
func (t *TrackerController) getProjection(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	snap, err := t.logbook.Load(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load tracking data"}
	}

	summaries := qada.Summarize(snap.Estimates, snap.Logs, snap.StartDate, snap.Today)
	return qada.Project(summaries, snap.Logs, snap.StartDate, snap.Today), nil
}

// GET /api/tracker/whatif?rate=2[&prayer=fajr]
//
// Interactive target-rate calculator. Without a prayer parameter every
// prayer is assumed repaid at the rate independently and the slowest backlog
// gates the answer.
func (t *TrackerController) getWhatIf(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rate, err := strconv.Atoi(ctx.Query("rate"))
	if err != nil || rate < 1 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "rate must be an integer >= 1", Kind: "validation"}
	}

	var scope *model.Prayer
	if raw := ctx.Query("prayer"); raw != "" {
		prayer, err := model.ParsePrayer(raw)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error(), Kind: "validation"}
		}
		scope = &prayer
	}

	snap, err := t.logbook.Load(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load tracking data"}
	}

	summaries := qada.Summarize(snap.Estimates, snap.Logs, snap.StartDate, snap.Today)
	return qada.WhatIf(summaries, scope, rate, snap.Today), nil
}
