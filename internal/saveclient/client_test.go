package saveclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func sampleRequest() contract.SaveRequest {
	return contract.SaveRequest{
		ProjectID: "3",
		Tasks: []contract.TaskPayload{
			{ItemID: "new-1", Name: "Draft", Subtasks: []contract.TaskPayload{}},
		},
		DeletedItemIDs: []string{"7"},
	}
}

type recordingObserver struct {
	events []SaveCallEvent
}

func (o *recordingObserver) OnCallComplete(_ context.Context, e SaveCallEvent) {
	o.events = append(o.events, e)
}

func TestClient_Save_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SavePath, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		cookie, err := r.Cookie(SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "abc123", cookie.Value)

		var req contract.SaveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "3", req.ProjectID)
		assert.Equal(t, []string{"7"}, req.DeletedItemIDs)
		require.Len(t, req.Tasks, 1)
		assert.Equal(t, "new-1", req.Tasks[0].ItemID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Tasks saved successfully!","new_ids_map":{"new-1":42}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.SessionCookie = "abc123"
	obs := &recordingObserver{}

	resp, err := New(cfg, obs).Save(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Tasks saved successfully!", resp.Message)
	assert.Equal(t, contract.ItemID("42"), resp.NewIDs["new-1"])

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.True(t, e.Success)
	assert.Equal(t, http.StatusOK, e.StatusCode)
	assert.Equal(t, 1, e.TaskCount)
	assert.Equal(t, 1, e.DeletedCount)
	assert.Empty(t, e.ErrorCode)
}

func TestClient_Save_RejectedWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Project not found or not owned by user."}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	_, err := New(testConfig(srv.URL), obs).Save(context.Background(), sampleRequest())

	require.ErrorIs(t, err, ErrRejected)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusForbidden, rejected.StatusCode)
	assert.Equal(t, "Project not found or not owned by user.", rejected.Message)
	assert.Equal(t, "REJECTED", obs.events[0].ErrorCode)
}

func TestClient_Save_RejectedWithoutJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>oops</html>", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil).Save(context.Background(), sampleRequest())

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Empty(t, rejected.Message)
	assert.Contains(t, rejected.Error(), "status 500")
}

func TestClient_Save_InvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>login</html>`))
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil).Save(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Save_Unavailable(t *testing.T) {
	obs := &recordingObserver{}
	_, err := New(testConfig("http://127.0.0.1:1"), obs).Save(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "UNAVAILABLE", obs.events[0].ErrorCode)
}

func TestClient_Save_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 30
	obs := &recordingObserver{}

	_, err := New(cfg, obs).Save(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "TIMEOUT", obs.events[0].ErrorCode)
}

func TestClient_Save_SentOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error","details":"boom"}`))
	}))
	defer srv.Close()

	_, err := New(testConfig(srv.URL), nil).Save(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, err.Error(), "boom")
}
