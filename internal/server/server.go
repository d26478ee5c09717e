package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kanbanlab/faultgate/internal/errorhandler"
)

type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
}

// New assembles the router and middleware chain. The error handler sits
// innermost so it sees failures after routing has bound the board id, and the
// logging middleware above it records the resulting 500 plus the board_id and
// error fields set by the failure hook.
func New(port int, logger *slog.Logger, errOpts ...errorhandler.Option) *Server {
	r := chi.NewRouter()

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(30 * time.Second))

	opts := append([]errorhandler.Option{
		errorhandler.WithLogger(logger),
		errorhandler.WithFailureHook(func(ctx context.Context, snap errorhandler.RequestSnapshot, err error) {
			AddError(ctx, err)
			if id, ok := errorhandler.BoardID(snap); ok {
				AddLogField(ctx, "board_id", id)
			}
		}),
	}, errOpts...)
	r.Use(errorhandler.Middleware(opts...))

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "faultgate")
	})

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), s.Router)
}
