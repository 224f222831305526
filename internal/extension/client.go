package extension

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

const (
	// IdempotencyKeyHeader lets the server recognise a retried submission
	IdempotencyKeyHeader = "Idempotency-Key"

	maxErrorBody = 512
)

// Confirmation is the successful answer of the app server
type Confirmation struct {
	StatusCode         int
	SellingPlanGroupID string
}

// actionResponse is the body the app server returns for every mode
type actionResponse struct {
	OK                 bool               `json:"ok"`
	SellingPlanGroupID string             `json:"sellingPlanGroupId"`
	UserErrors         []domain.UserError `json:"userErrors"`
	Error              string             `json:"error"`
}

// Client sends mode actions to the app server
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the extension endpoint, e.g. https://app.example.com/api/extension
func NewClient(endpoint string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Send issues exactly one request for spec with body, authenticated by token
func (c *Client) Send(ctx context.Context, spec ModeSpec, token string, body []byte) (*Confirmation, error) {
	url := c.endpoint + spec.Path
	req, err := http.NewRequestWithContext(ctx, spec.Method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(IdempotencyKeyHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrTransport{Op: spec.Method + " " + url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrTransport{Op: "read response", Err: err}
	}

	var parsed actionResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if len(parsed.UserErrors) > 0 {
		return nil, &errors.ErrUserErrors{Errors: parsed.UserErrors}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if msg == "" {
			msg = truncate(string(raw), maxErrorBody)
		}
		return nil, &errors.ErrStatus{Code: resp.StatusCode, Body: msg}
	}
	if decodeErr != nil && len(bytes.TrimSpace(raw)) > 0 {
		c.logger.Debug("Extension response is not JSON", zap.String("path", spec.Path), zap.Error(decodeErr))
	}

	return &Confirmation{
		StatusCode:         resp.StatusCode,
		SellingPlanGroupID: parsed.SellingPlanGroupID,
	}, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
