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

// GET /api/tracker/estimates
func (t *TrackerController) listEstimates(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	estimates, err := t.store.ListEstimates(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list estimates"}
	}
	return estimates, nil
}

// PUT /api/tracker/estimates/:prayer
func (t *TrackerController) upsertEstimate(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	prayer, err := model.ParsePrayer(ctx.Param("prayer"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error(), Kind: "validation"}
	}

	var request packets.UpsertEstimateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	estimate := model.MissedEstimate{UserID: user.ID, Prayer: prayer, InitialCount: request.InitialCount}
	if err := t.store.UpsertEstimate(estimate); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save estimate"}
	}
	return estimate, nil
}

// POST /api/tracker/estimates/:prayer/adjust
func (t *TrackerController) adjustEstimate(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.AdjustEstimateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := t.logbook.AdjustEstimate(user.ID, model.Prayer(ctx.Param("prayer")), request.Delta); err != nil {
		return nil, mapLogbookError(err)
	}

	estimates, err := t.store.ListEstimates(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list estimates"}
	}
	return estimates, nil
}

// GET /api/tracker/estimate-helper?years=3.5
//
// Onboarding helper: a rough total of prayers missed over N years.
func (t *TrackerController) estimateHelper(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	years, err := strconv.ParseFloat(ctx.Query("years"), 64)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "years must be a number", Kind: "validation"}
	}

	total := qada.InitialEstimate(years)
	return packets.EstimateHelperResponse{
		Years:          years,
		EstimatedTotal: total,
		PerPrayer:      total / len(model.PrayerOrder),
	}, nil
}

// POST /api/tracker/onboarding
func (t *TrackerController) completeOnboarding(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.OnboardingRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	estimates := make([]model.MissedEstimate, 0, len(request.Estimates))
	for _, e := range request.Estimates {
		estimates = append(estimates, model.MissedEstimate{
			Prayer:       model.Prayer(e.Prayer),
			InitialCount: e.InitialCount,
		})
	}

	if err := t.logbook.CompleteOnboarding(user.ID, request.StartDate, estimates); err != nil {
		return nil, mapLogbookError(err)
	}
	return gin.H{"start_date": request.StartDate}, nil
}
