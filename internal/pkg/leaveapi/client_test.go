package leaveapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(config.JustificationConfig{
		BaseURL: server.URL,
		Timeout: time.Second,
	})
	return client, server
}

func TestApprovedCode(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

	t.Run("approved covering justification is found", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "emp-1", r.URL.Query().Get("employee_id"))
			w.Write([]byte(`{"justifications": [
				{"start_date": "2026-03-02", "end_date": "2026-03-06", "approval_state": "Approved", "code": "VAC"}
			]}`))
		})
		defer server.Close()

		code, found, err := client.ApprovedCode(ctx, "emp-1", date)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "VAC", code)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"justifications": [
				{"start_date": "2026-03-04", "end_date": "2026-03-04", "approval_state": "Approved", "code": "PER"}
			]}`))
		})
		defer server.Close()

		_, found, err := client.ApprovedCode(ctx, "emp-1", date)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("pending justifications never count", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"justifications": [
				{"start_date": "2026-03-02", "end_date": "2026-03-06", "approval_state": "Pending", "code": "VAC"}
			]}`))
		})
		defer server.Close()

		_, found, err := client.ApprovedCode(ctx, "emp-1", date)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("date outside the range is not covered", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"justifications": [
				{"start_date": "2026-03-05", "end_date": "2026-03-06", "approval_state": "Approved", "code": "VAC"}
			]}`))
		})
		defer server.Close()

		_, found, err := client.ApprovedCode(ctx, "emp-1", date)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed rows are skipped", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"justifications": [
				{"start_date": "not-a-date", "end_date": "2026-03-06", "approval_state": "Approved", "code": "X"},
				{"start_date": "2026-03-02", "end_date": "2026-03-06", "approval_state": "Approved", "code": "PER"}
			]}`))
		})
		defer server.Close()

		code, found, err := client.ApprovedCode(ctx, "emp-1", date)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "PER", code)
	})

	t.Run("server error surfaces as error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer server.Close()

		_, found, err := client.ApprovedCode(ctx, "emp-1", date)
		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("slow server times out", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"justifications": []}`))
		}))
		defer server.Close()

		client := NewClient(config.JustificationConfig{
			BaseURL: server.URL,
			Timeout: 50 * time.Millisecond,
		})

		_, _, err := client.ApprovedCode(ctx, "emp-1", date)
		assert.Error(t, err)
	})
}
