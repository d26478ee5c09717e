package errorhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// DefaultReportTimeout bounds a single delivery attempt to the collector.
const DefaultReportTimeout = 5 * time.Second

// Reporter delivers diagnostic payloads to a collector endpoint. Delivery is
// strictly best effort: failures are logged and the payload is dropped. There
// is no retry and no queueing.
type Reporter struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewReporter builds a Reporter. A nil client falls back to a dedicated
// http.Client, and a non-positive timeout falls back to DefaultReportTimeout.
func NewReporter(client *http.Client, timeout time.Duration, logger *slog.Logger) *Reporter {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultReportTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{client: client, timeout: timeout, logger: logger}
}

// Report POSTs the payload for snap/event to endpoint as JSON. It runs on the
// reporting goroutine with its own deadline, detached from the request
// context, which is already dead or dying by the time delivery happens.
func (rp *Reporter) Report(endpoint string, snap RequestSnapshot, event FailureEvent) {
	payload := buildPayload(snap, event)

	body, err := json.Marshal(payload)
	if err != nil {
		rp.logger.Error("diagnostic payload encoding failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), rp.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		rp.logger.Error("diagnostic request build failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rp.client.Do(req)
	if err != nil {
		rp.logger.Error("diagnostic delivery failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rp.logger.Error("collector rejected diagnostic",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
		)
		return
	}

	rp.logger.Info("diagnostic delivered",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
	)
}
