// Package saveclient sends the task tree to the web app's save endpoint.
package saveclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/google/uuid"
)

// SavePath is the endpoint path, relative to Config.Endpoint.
const SavePath = "/save-tasks"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Client posts save payloads. A request is sent exactly once: the endpoint
// inserts rows for local ids, so a retry could duplicate them.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// New creates a Client. A nil observer discards events.
func New(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Save posts req and decodes the server's answer.
func (c *Client) Save(ctx context.Context, req contract.SaveRequest) (*contract.SaveResponse, error) {
	start := time.Now()
	if c.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	event := SaveCallEvent{
		RequestID:    uuid.New().String(),
		ProjectID:    req.ProjectID,
		TaskCount:    contract.CountTasks(req.Tasks),
		DeletedCount: len(req.DeletedItemIDs),
	}

	resp, status, err := c.doRequest(ctx, event.RequestID, req)
	event.LatencyMs = time.Since(start).Milliseconds()
	event.StatusCode = status
	event.Success = err == nil
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(ctx, event)

	return resp, err
}

func (c *Client) doRequest(ctx context.Context, requestID string, body contract.SaveRequest) (*contract.SaveResponse, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + SavePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if cookie := c.cfg.cookieHeader(); cookie != "" {
		httpReq.Header.Set("Cookie", cookie)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		rejected := &RejectedError{StatusCode: httpResp.StatusCode}
		var errBody contract.ErrorResponse
		if json.Unmarshal(respBody, &errBody) == nil {
			rejected.Message = errBody.Error
			rejected.Details = errBody.Details
		}
		return nil, httpResp.StatusCode, rejected
	}

	var resp contract.SaveResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &resp, httpResp.StatusCode, nil
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
