// Package hackatime fetches per-day coding stats from the Hackatime API.
package hackatime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
	"github.com/j-veylop/hackatime-wrapped/internal/logger"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
)

// DefaultBaseURL is the public users endpoint.
const DefaultBaseURL = "https://hackatime.hackclub.com/api/v1/users"

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// DayFetcher resolves one local calendar day into stats. A nil result with
// a nil error means the API had no data for the day.
type DayFetcher interface {
	FetchDay(ctx context.Context, userID string, day time.Time) (*models.DayStats, error)
}

// Client talks to the Hackatime stats endpoint. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL and a
// nil httpClient gets one with the given timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type categoryPayload struct {
	Name         string  `json:"name"`
	TotalSeconds float64 `json:"total_seconds"`
}

type statsPayload struct {
	TotalSeconds     float64           `json:"total_seconds"`
	Languages        []categoryPayload `json:"languages"`
	Editors          []categoryPayload `json:"editors"`
	OperatingSystems []categoryPayload `json:"operating_systems"`
}

type statsResponse struct {
	Data *statsPayload `json:"data"`
}

// StatsURL builds the request URL covering the local calendar day of day,
// with both bounds expressed in UTC.
func (c *Client) StatsURL(userID string, day time.Time) string {
	start := calendar.DateOf(day)
	end := calendar.AddDays(start, 1)

	q := url.Values{}
	q.Set("start_date", start.UTC().Format(timestampLayout))
	q.Set("end_date", end.UTC().Format(timestampLayout))

	return fmt.Sprintf("%s/%s/stats?%s", c.baseURL, url.PathEscape(userID), q.Encode())
}

// FetchDay implements DayFetcher.
func (c *Client) FetchDay(ctx context.Context, userID string, day time.Time) (*models.DayStats, error) {
	reqURL := c.StatsURL(userID, day)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed statsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse stats response: %w", err)
	}
	if parsed.Data == nil {
		return nil, nil
	}

	stats := parsed.Data.toDayStats()
	return &stats, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	const maxBody = 200
	body := e.Body
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return fmt.Sprintf("stats request failed (status %d): %s", e.StatusCode, body)
}

func (p *statsPayload) toDayStats() models.DayStats {
	return models.DayStats{
		TotalSeconds:     toSeconds(p.TotalSeconds),
		Languages:        toCategories(p.Languages),
		Editors:          toCategories(p.Editors),
		OperatingSystems: toCategories(p.OperatingSystems),
	}
}

func toCategories(in []categoryPayload) []models.CategoryStat {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.CategoryStat, len(in))
	for i, c := range in {
		out[i] = models.CategoryStat{Name: c.Name, Seconds: toSeconds(c.TotalSeconds)}
	}
	return out
}

// toSeconds rounds API durations to whole seconds and drops negatives.
func toSeconds(v float64) int64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int64(math.Round(v))
}
