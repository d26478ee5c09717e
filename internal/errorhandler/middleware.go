package errorhandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
)

// EndpointEnvVar names the environment variable holding the collector
// endpoint URL. Blank or unset disables diagnostic reporting.
const EndpointEnvVar = "FAULTGATE_COLLECTOR_ENDPOINT"

// clientErrorMessage is the fixed text returned to callers. Stack traces,
// type names, and line numbers stay on the diagnostic channel only.
const clientErrorMessage = "An error occurred while processing your request"

// clientError is the body written to the caller on any unhandled failure.
type clientError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// failureKey carries the per-request failure box installed by Middleware.
type failureKey struct{}

// failureBox collects a failure returned by an E-wrapped handler so the
// middleware can pick it up after the handler unwinds.
type failureBox struct {
	err   error
	stack string
}

// FailureHook observes a caught failure on the request goroutine, before the
// client response is written. Used to enrich request-scoped logs.
type FailureHook func(ctx context.Context, snap RequestSnapshot, err error)

type options struct {
	logger   *slog.Logger
	endpoint func() string
	reporter *Reporter
	hook     FailureHook
}

// Option configures Middleware.
type Option func(*options)

// WithLogger sets the logger for caught failures and delivery outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEndpoint pins the collector endpoint to a fixed URL. Blank disables
// reporting.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = func() string { return url } }
}

// WithEndpointFunc sets the endpoint lookup. The function is called once per
// caught failure, so a lookup backed by live configuration picks up changes
// without a restart.
func WithEndpointFunc(fn func() string) Option {
	return func(o *options) { o.endpoint = fn }
}

// WithReporter replaces the default reporter, mainly for tests.
func WithReporter(rp *Reporter) Option {
	return func(o *options) { o.reporter = rp }
}

// WithFailureHook registers a hook invoked for every caught failure.
func WithFailureHook(hook FailureHook) Option {
	return func(o *options) { o.hook = hook }
}

// Middleware wraps downstream handlers with failure interception. Handlers
// that complete normally pass through untouched. A panic, or an error
// surfaced through E, is logged, reported to the collector endpoint on a
// detached goroutine when one is configured, and answered with a generic 500
// JSON body. The response is written as soon as the reporting goroutine is
// scheduled; it never waits for delivery.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := options{
		logger:   slog.Default(),
		endpoint: func() string { return os.Getenv(EndpointEnvVar) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = NewReporter(nil, DefaultReportTimeout, o.logger)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			box := &failureBox{}
			r = r.WithContext(context.WithValue(r.Context(), failureKey{}, box))

			defer func() {
				var event FailureEvent
				if rec := recover(); rec != nil {
					event = newFailureEvent(asError(rec), debug.Stack())
				} else if box.err != nil {
					event = newFailureEvent(box.err, []byte(box.stack))
				} else {
					return
				}

				o.handleFailure(w, r, event)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// handleFailure runs the synchronous failure tail: log, snapshot, schedule
// reporting, answer the client. Nothing here may panic.
func (o *options) handleFailure(w http.ResponseWriter, r *http.Request, event FailureEvent) {
	o.logger.Error("unhandled failure in request pipeline",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("type", typeName(event.Err)),
		slog.String("error", event.Err.Error()),
	)

	// Copy request state out before anything asynchronous happens; the
	// request object is not valid once this handler returns.
	snap := Snapshot(r)

	if o.hook != nil {
		o.hook(r.Context(), snap, event.Err)
	}

	if endpoint := strings.TrimSpace(o.endpoint()); endpoint != "" {
		go func() {
			defer func() {
				if rec := recover(); rec != nil {
					o.logger.Error("diagnostic reporting panicked",
						slog.String("panic", asError(rec).Error()),
					)
				}
			}()
			o.reporter.Report(endpoint, snap, event)
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(clientError{
		Error:   clientErrorMessage,
		Message: event.Err.Error(),
	}); err != nil {
		// The connection is gone; the host owns this failure mode.
		o.logger.Warn("client error response write failed",
			slog.String("error", err.Error()),
		)
	}
}

// E adapts an error-returning handler so its failure flows through the
// surrounding Middleware instead of being handled ad hoc. Without the
// middleware installed the adapter falls back to a bare 500.
func E(h func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		if box, ok := r.Context().Value(failureKey{}).(*failureBox); ok {
			box.err = err
			box.stack = string(debug.Stack())
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
