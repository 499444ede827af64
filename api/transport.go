package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rs/xid"
)

const requestIDHeader = "X-Request-Id"

// LoggingRoundTripper implements http.RoundTripper and logs every request
// with a generated request id, its status and duration.
type LoggingRoundTripper struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingRoundTripper returns a new logging RoundTripper instance.
func NewLoggingRoundTripper(next http.RoundTripper, logger *slog.Logger) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return LoggingRoundTripper{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper interface.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()

	req = req.Clone(ctx)
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		rt.logger.ErrorContext(ctx, "http request failed",
			slog.String("request_id", requestID),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Duration("duration", elapsed),
			tint.Err(err),
		)
		return nil, fmt.Errorf("round trip %s: %w", req.URL.Path, err)
	}

	level := slog.LevelDebug
	if resp.StatusCode >= http.StatusBadRequest {
		level = slog.LevelWarn
	}
	rt.logger.Log(ctx, level, "http request",
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed),
	)
	return resp, nil
}
