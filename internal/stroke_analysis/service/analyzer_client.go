package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"golang.org/x/time/rate"
)

// UpstreamError is a non-2xx answer from the analysis backend.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis backend returned status %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return domain.ErrRequestFailed }

// ClientOptions tunes the analyzer client. Zero values pick defaults.
type ClientOptions struct {
	Timeout    time.Duration
	RatePerSec float64 // <= 0 disables limiting
	Burst      int
}

// AnalyzerClient talks to the external stroke analysis backend.
type AnalyzerClient struct {
	baseURL    string
	httpClient *http.Client
	pingClient *http.Client
	limiter    *rate.Limiter
}

// NewAnalyzerClient creates a client for the backend at baseURL.
func NewAnalyzerClient(baseURL string, opts ClientOptions) *AnalyzerClient {
	if opts.Timeout <= 0 {
		opts.Timeout = AnalyzeTimeout
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	return &AnalyzerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		pingClient: &http.Client{Timeout: PingTimeout},
		limiter:    rate.NewLimiter(limit, opts.Burst),
	}
}

// BaseURL returns the backend root the client was built with.
func (c *AnalyzerClient) BaseURL() string { return c.baseURL }

// Analyze uploads the video as multipart form data to POST /analyze and
// decodes the analysis payload. The video is streamed, not buffered.
func (c *AnalyzerClient) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	logger := NewLogger(ctx)
	if req.Video.Empty() {
		return nil, domain.ErrMissingFile
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrRequestFailed, err)
	}

	start := time.Now()
	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeAnalyzeForm(mw, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", pr)
	if err != nil {
		logger.LogError("analyze", err)
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	if rid := logging.RequestID(ctx); rid != "" {
		httpReq.Header.Set("X-Request-Id", rid)
	}

	logger.LogInfof("analyze", "uploading %s (%d bytes) student=%q stroke=%s",
		req.Video.Filename, req.Video.Size, req.StudentName, req.StrokeType)

	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("analyze", err)
		recordUpstreamCall(duration, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		upErr := &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		logger.LogWarnf("analyze", "upstream returned status %d", resp.StatusCode)
		recordUpstreamCall(duration, upErr)
		return nil, upErr
	}

	var result domain.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.LogError("analyze", err)
		recordUpstreamCall(duration, err)
		return nil, fmt.Errorf("%w: decode JSON: %v", domain.ErrRequestFailed, err)
	}
	result.Normalize()
	recordUpstreamCall(duration, nil)
	logger.LogInfof("analyze", "analysis finished in %s doing_well=%d work_on=%d",
		duration.Round(time.Millisecond), len(result.Suggestions.DoingWell), len(result.Suggestions.WorkOn))
	return &result, nil
}

// Ping checks that the backend's status endpoint answers with 2xx.
func (c *AnalyzerClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.pingClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{StatusCode: resp.StatusCode}
	}
	return nil
}

// writeAnalyzeForm emits the fields in the order the backend documents:
// file, student_name, stroke_type.
func writeAnalyzeForm(mw *multipart.Writer, req domain.AnalysisRequest) error {
	contentType := req.Video.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(req.Video.Filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, req.Video.Reader); err != nil {
		return fmt.Errorf("copy video: %w", err)
	}
	if err := mw.WriteField("student_name", req.StudentName); err != nil {
		return fmt.Errorf("write student_name: %w", err)
	}
	if err := mw.WriteField("stroke_type", req.StrokeType.String()); err != nil {
		return fmt.Errorf("write stroke_type: %w", err)
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
