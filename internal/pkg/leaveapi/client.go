// Package leaveapi is the read-only HTTP client for the external incidents
// service that owns leave justifications.
package leaveapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/justification"
)

// Client implements justification.Oracle against the incidents service REST
// API. Every call is bounded by the configured timeout; the engine treats
// any failure here as "no justification".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.JustificationConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// APIError represents a non-2xx reply from the incidents service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("incidents API error [%d]: %s", e.StatusCode, e.Body)
}

type justificationPayload struct {
	StartDate     string `json:"start_date"` // "YYYY-MM-DD"
	EndDate       string `json:"end_date"`
	ApprovalState string `json:"approval_state"`
	Code          string `json:"code"`
}

type listPayload struct {
	Justifications []justificationPayload `json:"justifications"`
}

// ApprovedCode implements justification.Oracle. It fetches the employee's
// justifications and returns the code of the first approved one whose
// inclusive date range contains date.
func (c *Client) ApprovedCode(ctx context.Context, employeeID string, date time.Time) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/api/v1/justifications?employee_id=%s",
		c.baseURL, url.QueryEscape(employeeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to build justifications request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to call incidents service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, &APIError{StatusCode: resp.StatusCode, Body: resp.Status}
	}

	var payload listPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("failed to decode justifications response: %w", err)
	}

	for _, item := range payload.Justifications {
		j, err := toJustification(item)
		if err != nil {
			continue // malformed rows never block the scan
		}
		if j.Covers(date) {
			return j.Code, true, nil
		}
	}

	return "", false, nil
}

func toJustification(p justificationPayload) (justification.Justification, error) {
	start, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return justification.Justification{}, err
	}
	end, err := time.Parse("2006-01-02", p.EndDate)
	if err != nil {
		return justification.Justification{}, err
	}
	return justification.Justification{
		StartDate:     start,
		EndDate:       end,
		ApprovalState: p.ApprovalState,
		Code:          p.Code,
	}, nil
}
