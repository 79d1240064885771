package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reacji/internal/config"
	"reacji/internal/core"
)

type contextKey string

const loggerContextKey = contextKey("logger")

type Server struct {
	Logger    *slog.Logger
	Config    *config.Config
	Ingestor  core.EventIngestor
	Registrar core.RuleRegistrar

	server *http.Server
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) Init(context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	r := chi.NewMux()

	logger := func(ctx context.Context) *slog.Logger {
		return ctx.Value(loggerContextKey).(*slog.Logger)
	}

	r.Use(
		// Logger in context
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger := s.Logger.With("method", r.Method, "path", r.URL.Path)
				ctx := context.WithValue(r.Context(), loggerContextKey, logger)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},

		// Request logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

				next.ServeHTTP(sw, r)

				duration := time.Since(start)
				logger(r.Context()).Info("request", "duration", duration, "status", sw.status)
			})
		},

		// Recovering panics and logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if err := recover(); err != nil {
						logger(r.Context()).Error("panic recovered", "error", err)
						http.Error(w, "internal server error", http.StatusInternalServerError)
					}
				}()
				next.ServeHTTP(w, r)
			})
		},
	)

	r.Post("/ingest", s.pipelineHandler(func(ctx context.Context, body []byte) (core.Response, error) {
		return s.Ingestor.Ingest(ctx, body)
	}))
	r.Post("/commands/reacji", s.pipelineHandler(func(ctx context.Context, body []byte) (core.Response, error) {
		return s.Registrar.Register(ctx, body)
	}))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.server = &http.Server{
		Handler:           r,
		Addr:              s.Config.ListenAddr,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		// TODO: figure out a good context here, Run's ctx is cancelled.
		s.server.Shutdown(context.TODO()) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// pipelineHandler adapts a pipeline contract to HTTP: pipeline responses are
// written verbatim, pipeline errors become an opaque 500.
func (s *Server) pipelineHandler(run func(ctx context.Context, body []byte) (core.Response, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		resp, err := run(r.Context(), body)
		if err != nil {
			s.logger(r.Context()).Error("pipeline failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body)) //nolint:errcheck
	}
}

func (s *Server) logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return s.Logger
}
