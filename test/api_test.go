package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/tawba/internal/http/api/auth/endpoints"
	trackerapi "github.com/Nixie-Tech-LLC/tawba/internal/http/api/tracker/endpoints"
)

const jwtSecret = "supersecret"

func setupRouter(store db.Store) *gin.Engine {
	r := gin.New()

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		authapi.AuthPublicModule(jwtSecret, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/tracker",
		Auth:      true,
		SecretKey: jwtSecret,
		Store:     store,
	},
		trackerapi.LogModule(store, nil),
		trackerapi.EstimateModule(store, nil),
		trackerapi.ProgressModule(store, nil),
		trackerapi.SettingsModule(store, nil),
	)

	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/auth/signup", "", map[string]any{
		"email":    fmt.Sprintf("api-%d@example.com", time.Now().UnixNano()),
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["token"]
}

func TestTrackerFlow(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)

	// unauthenticated requests are rejected
	w := doJSON(t, router, "GET", "/api/tracker/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signup(t, router)
	today := time.Now().Format("2006-01-02")

	// onboarding: start today with a fajr backlog of 5
	w = doJSON(t, router, "POST", "/api/tracker/onboarding", token, map[string]any{
		"start_date": today,
		"estimates": []map[string]any{
			{"prayer": "fajr", "initial_count": 5},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// summary before any logs: nothing accrued on day zero
	w = doJSON(t, router, "GET", "/api/tracker/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Summaries []struct {
			Prayer    string `json:"prayer"`
			Remaining int    `json:"remaining"`
		} `json:"summaries"`
		TotalRemaining int `json:"total_remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Summaries, 5)
	assert.Equal(t, "fajr", summary.Summaries[0].Prayer)
	assert.Equal(t, 5, summary.Summaries[0].Remaining)
	assert.Equal(t, 5, summary.TotalRemaining)

	// log today's asr on time, then try to log it again
	w = doJSON(t, router, "POST", "/api/tracker/logs", token, map[string]any{
		"prayer": "asr", "type": "current",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/tracker/logs", token, map[string]any{
		"prayer": "asr", "type": "current",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	var errBody struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "duplicate_log", errBody.Kind)

	// invalid qada count is a validation failure
	w = doJSON(t, router, "POST", "/api/tracker/logs", token, map[string]any{
		"prayer": "fajr", "type": "qada", "count": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "validation", errBody.Kind)

	// repay 4 fajr, summary drops to 1 remaining
	w = doJSON(t, router, "POST", "/api/tracker/logs", token, map[string]any{
		"prayer": "fajr", "type": "qada", "count": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, router, "GET", "/api/tracker/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Summaries[0].Remaining)

	// projection now has one day of history at 4/day
	w = doJSON(t, router, "GET", "/api/tracker/projection", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projection struct {
		DailyAverage float64 `json:"daily_average"`
		Date         *string `json:"projected_completion_date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projection))
	assert.InDelta(t, 4.0, projection.DailyAverage, 1e-9)
	require.NotNil(t, projection.Date)

	// what-if at 2/day: ceil(1/2) = 1 day
	w = doJSON(t, router, "GET", "/api/tracker/whatif?rate=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var whatif struct {
		DaysToClear  int  `json:"days_to_clear"`
		AlreadyClear bool `json:"already_clear"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &whatif))
	assert.Equal(t, 1, whatif.DaysToClear)
	assert.False(t, whatif.AlreadyClear)

	// edit the qada log down to 2, then delete it
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/tracker/logs/%d", created.ID), token, map[string]any{
		"count": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/tracker/logs/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/tracker/summary", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 5, summary.Summaries[0].Remaining)
}

func TestWhatIfValidation(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)
	token := signup(t, router)

	w := doJSON(t, router, "GET", "/api/tracker/whatif?rate=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/tracker/whatif?rate=2&prayer=brunch", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/tracker/whatif?rate=2&prayer=fajr", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetClearsTracking(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)
	token := signup(t, router)
	today := time.Now().Format("2006-01-02")

	w := doJSON(t, router, "POST", "/api/tracker/onboarding", token, map[string]any{
		"start_date": today,
		"estimates":  []map[string]any{{"prayer": "isha", "initial_count": 40}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/tracker/reset", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/tracker/summary", token, nil)
	var summary struct {
		TotalRemaining int `json:"total_remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Zero(t, summary.TotalRemaining)

	w = doJSON(t, router, "GET", "/api/tracker/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings struct {
		StartDate *string `json:"start_date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Nil(t, settings.StartDate)
}
