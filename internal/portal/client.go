package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
)

// CheckResultPath is the lookup endpoint relative to the API base URL.
const CheckResultPath = "/check_result"

const maxResponseBytes = 1 << 20

// Client calls the result lookup API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient targets baseURL + CheckResultPath. A nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + CheckResultPath,
		httpClient: httpClient,
		logger:     logger,
	}
}

// CheckResult issues exactly one POST and classifies the outcome.
//
// A non-2xx JSON response yields an error with code LOOKUP_SERVER_ERROR whose message is the
// server's "error" field, or the generic fallback. No response, or any body that does not
// decode as JSON, yields LOOKUP_TRANSPORT_ERROR wrapping the cause.
func (c *Client) CheckResult(ctx context.Context, req dto.CheckResultRequest) (*dto.ResultPayload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, transportError(fmt.Errorf("marshal lookup request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, transportError(fmt.Errorf("create lookup request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(fmt.Errorf("send lookup request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(fmt.Errorf("read lookup response: %w", err))
	}
	c.logger.Debug("lookup response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body dto.ErrorBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, transportError(fmt.Errorf("decode lookup error response (status %d): %w", resp.StatusCode, err))
		}
		return nil, serverError(resp.StatusCode, body.Error)
	}

	var payload dto.ResultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, transportError(fmt.Errorf("decode lookup response: %w", err))
	}
	return &payload, nil
}

func transportError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrLookupTransport.Code, appErrors.ErrLookupTransport.Status, appErrors.ErrLookupTransport.Message)
}

func serverError(status int, message string) error {
	appErr := appErrors.Clone(appErrors.ErrLookupServer, message)
	appErr.Status = status
	return appErr
}
