// Package athan fetches daily prayer timetables. The astronomical
// calculation itself is delegated to the Al Adhan HTTP API; results are
// cached in Redis for a day per (location, date) so a device refreshing its
// home screen does not hammer the upstream service.
package athan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/model"
	"github.com/Nixie-Tech-LLC/tawba/internal/redis"
)

const (
	defaultBaseURL = "https://api.aladhan.com/v1"
	// Muslim World League method, Hanafi asr school
	calculationMethod = 3
	asrSchool         = 1

	cacheTTL = 24 * time.Hour
)

// timings is the subset of the Al Adhan response we consume. Values are
// HH:MM strings, possibly suffixed with a timezone label like " (BST)".
type timings struct {
	Fajr    string `json:"Fajr"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

type apiResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings timings `json:"timings"`
	} `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	useCache   bool
}

func NewClient(useCache bool) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		useCache:   useCache,
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Times returns the five daily prayer times for date (YYYY-MM-DD) at the
// given coordinates, from cache when possible.
func (c *Client) Times(ctx context.Context, latitude, longitude float64, date string) (model.Timetable, error) {
	key := fmt.Sprintf("athan:%.4f:%.4f:%s", latitude, longitude, date)

	if c.useCache {
		if cached, err := redis.Get(ctx, key); err == nil {
			var table model.Timetable
			if err := json.Unmarshal([]byte(cached), &table); err == nil {
				return table, nil
			}
			log.Warn().Str("key", key).Msg("discarding malformed cached timetable")
		}
	}

	table, err := c.fetch(ctx, latitude, longitude, date)
	if err != nil {
		return model.Timetable{}, err
	}

	if c.useCache {
		if payload, err := json.Marshal(table); err == nil {
			_ = redis.Set(ctx, key, payload, cacheTTL)
		}
	}
	return table, nil
}

func (c *Client) fetch(ctx context.Context, latitude, longitude float64, date string) (model.Timetable, error) {
	// Al Adhan expects DD-MM-YYYY in the path
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return model.Timetable{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	endpoint := fmt.Sprintf("%s/timings/%s?%s", c.baseURL, parsed.Format("02-01-2006"), url.Values{
		"latitude":  {fmt.Sprintf("%f", latitude)},
		"longitude": {fmt.Sprintf("%f", longitude)},
		"method":    {fmt.Sprintf("%d", calculationMethod)},
		"school":    {fmt.Sprintf("%d", asrSchool)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Timetable{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Timetable{}, fmt.Errorf("athan api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Timetable{}, fmt.Errorf("athan api returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Timetable{}, fmt.Errorf("athan api decode: %w", err)
	}
	if payload.Code != http.StatusOK {
		return model.Timetable{}, fmt.Errorf("athan api returned code %d (%s)", payload.Code, payload.Status)
	}

	t := payload.Data.Timings
	return model.Timetable{
		Date:      date,
		Latitude:  latitude,
		Longitude: longitude,
		Times: []model.PrayerTime{
			{Prayer: model.Fajr, Time: cleanTime(t.Fajr)},
			{Prayer: model.Dhuhr, Time: cleanTime(t.Dhuhr)},
			{Prayer: model.Asr, Time: cleanTime(t.Asr)},
			{Prayer: model.Maghrib, Time: cleanTime(t.Maghrib)},
			{Prayer: model.Isha, Time: cleanTime(t.Isha)},
		},
	}, nil
}

// cleanTime strips a trailing timezone label: "05:12 (BST)" -> "05:12".
func cleanTime(s string) string {
	if i := strings.Index(s, " "); i >= 0 {
		return s[:i]
	}
	return s
}
