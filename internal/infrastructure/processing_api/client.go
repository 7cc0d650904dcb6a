package processing_api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kurochkinivan/defect_reporter/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	DefaultTimeout     = 5 * time.Minute
	DefaultMaxBodySize = 64 << 20

	maxErrorBody  = 512
	requestHeader = "X-Request-ID"
)

const (
	ExportCSV   = "csv"
	ExportExcel = "excel"
	ExportJSON  = "json"
)

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithMaxBodySize caps the size of a response body; larger responses fail with ErrBodyTooLarge.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to the processing backend. Every method performs exactly one request.
type Client struct {
	log         *slog.Logger
	baseURL     string
	token       string
	httpClient  *http.Client
	maxBodySize int64
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		log:         log,
		baseURL:     strings.TrimRight(u.String(), "/"),
		httpClient:  &http.Client{Timeout: timeout},
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) CreateJob(ctx context.Context, fileID domain.ID) (*domain.ProcessingJob, error) {
	raw, err := c.do(ctx, http.MethodPost, c.endpoint("files", fileID.String(), "process"))
	if err != nil {
		return nil, fmt.Errorf("failed to create job for file %s: %w", fileID, err)
	}

	return decode[domain.ProcessingJob](raw)
}

func (c *Client) FileProcessing(ctx context.Context, fileID domain.ID) (*domain.FileProcessing, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("files", fileID.String(), "processing"))
	if err != nil {
		return nil, fmt.Errorf("failed to get processing of file %s: %w", fileID, err)
	}

	return decode[domain.FileProcessing](raw)
}

func (c *Client) JobStatus(ctx context.Context, jobID domain.ID) (*domain.JobWithResults, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("jobs", jobID.String(), "status"))
	if err != nil {
		return nil, fmt.Errorf("failed to get status of job %s: %w", jobID, err)
	}

	return decode[domain.JobWithResults](raw)
}

func (c *Client) ExecuteJob(ctx context.Context, jobID domain.ID) (*domain.ExecuteResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, c.endpoint("jobs", jobID.String(), "execute"))
	if err != nil {
		return nil, fmt.Errorf("failed to execute job %s: %w", jobID, err)
	}

	return decode[domain.ExecuteResponse](raw)
}

// Result fetches a single result. The backend may answer with a one-element
// list instead of an object; both are accepted.
func (c *Client) Result(ctx context.Context, resultID domain.ID) (*domain.ProcessingResult, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("results", resultID.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to get result %s: %w", resultID, err)
	}

	body := gjson.ParseBytes(raw)
	if body.IsArray() {
		items := body.Array()
		if len(items) == 0 {
			return nil, fmt.Errorf("result %s: %w", resultID, ErrNotFound)
		}

		raw = []byte(items[0].Raw)
	}

	return decode[domain.ProcessingResult](raw)
}

func (c *Client) ResultExports(ctx context.Context, resultID domain.ID) ([]domain.Export, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("results", resultID.String(), "exports"))
	if err != nil {
		return nil, fmt.Errorf("failed to list exports of result %s: %w", resultID, err)
	}

	exports, err := decode[[]domain.Export](raw)
	if err != nil {
		return nil, err
	}

	return *exports, nil
}

// DownloadExport returns the raw export file of the given type (csv, excel or json).
func (c *Client) DownloadExport(ctx context.Context, resultID domain.ID, exportType string) ([]byte, error) {
	switch exportType {
	case ExportCSV, ExportExcel, ExportJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExport, exportType)
	}

	raw, err := c.do(ctx, http.MethodGet, c.endpoint("results", resultID.String(), "download", exportType))
	if err != nil {
		return nil, fmt.Errorf("failed to download %s export of result %s: %w", exportType, resultID, err)
	}

	return raw, nil
}

func (c *Client) endpoint(elems ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)

	for _, elem := range elems {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(elem))
	}

	b.WriteByte('/')

	return b.String()
}

func (c *Client) do(ctx context.Context, method, endpoint string) ([]byte, error) {
	reqID := uuid.NewString()
	log := c.log.With(
		slog.String("req_id", reqID),
		slog.String("method", method),
		slog.String("url", endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestHeader, reqID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.DebugContext(ctx, "request failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WarnContext(ctx, "failed to close response body", slog.String("err", err.Error()))
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(raw)) > c.maxBodySize {
		log.WarnContext(ctx, "response body too large",
			slog.Int("status", resp.StatusCode),
			slog.Int64("limit", c.maxBodySize),
		)
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}

	log.DebugContext(ctx, "received response",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(raw)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Code: resp.StatusCode, Body: errorBody(raw)}
	}

	return raw, nil
}

func decode[T any](raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &v, nil
}

// errorBody extracts the backend's "error" or "detail" message, falling back to the raw body.
func errorBody(raw []byte) string {
	if gjson.ValidBytes(raw) {
		body := gjson.ParseBytes(raw)
		for _, field := range []string{"error", "detail"} {
			if msg := body.Get(field); msg.Type == gjson.String {
				return msg.String()
			}
		}
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}

	return msg
}
