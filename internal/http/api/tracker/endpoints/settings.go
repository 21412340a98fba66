package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api/tracker/packets"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// GET /api/tracker/settings
func (t *TrackerController) getSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	settings, err := t.store.GetSettings(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}
	return settings, nil
}

// PUT /api/tracker/settings
//
// Start date is not editable here; it is set once by onboarding and cleared
// by reset.
func (t *TrackerController) updateSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if request.Language != nil {
		if err := t.store.SetSetting(user.ID, db.SettingLanguage, request.Language); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
		}
	}
	if request.FontSize != nil {
		if err := t.store.SetSetting(user.ID, db.SettingFontSize, request.FontSize); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
		}
	}
	if request.RemindersEnabled != nil {
		value := "0"
		if *request.RemindersEnabled {
			value = "1"
		}
		if err := t.store.SetSetting(user.ID, db.SettingRemindersEnabled, &value); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
		}
	}
	if request.Location != nil {
		payload, err := json.Marshal(request.Location)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid location"}
		}
		value := string(payload)
		if err := t.store.SetSetting(user.ID, db.SettingLocation, &value); err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save settings"}
		}
	}

	settings, err := t.store.GetSettings(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load settings"}
	}
	return settings, nil
}

// POST /api/tracker/reset
func (t *TrackerController) resetApp(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if err := t.logbook.Reset(user.ID); err != nil {
		return nil, mapLogbookError(err)
	}
	return gin.H{"reset": true}, nil
}
