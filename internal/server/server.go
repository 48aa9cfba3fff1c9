// Package server provides the HTTP REST API and mounts the web pages for company prep.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonathan/company-prep/internal/server/ratelimit"
	"github.com/jonathan/company-prep/internal/types"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 300 * time.Second // research waits on the AI provider
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
)

// CompanyService is the set of company operations the API exposes; *companies.Service implements it
type CompanyService interface {
	Search(ctx context.Context, query string) (*types.Company, error)
	Get(ctx context.Context, name string) (*types.Company, error)
	Research(ctx context.Context, name string) (*types.Company, bool, error)
	List(ctx context.Context, limit int) ([]types.Company, error)
	RecentSearches(ctx context.Context, limit int) ([]string, error)
	Health(ctx context.Context) error
}

// Pages mounts HTML routes next to the API
type Pages interface {
	Mount(r chi.Router)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	router      chi.Router
	companies   CompanyService
	rateLimiter *ratelimit.Limiter
	logger      zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Host string
	Port int
	// RateLimit defaults to ratelimit.LoadConfig() when nil
	RateLimit *ratelimit.Config
}

// New creates a new server instance. pages may be nil to serve the API only.
func New(cfg Config, companies CompanyService, pages Pages, logger zerolog.Logger) *Server {
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		companies:   companies,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestID)
	r.Use(s.withLogging)
	r.Use(s.withCORS)
	r.Use(s.withRateLimit)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies", s.handleListCompanies)
		r.Get("/companies/search", s.handleSearchCompany)
		r.Post("/companies/research", s.handleResearchCompany)
		// chi never matches an empty {name}, so the bare prefix is routed explicitly
		r.Get("/companies/", s.handleGetCompany)
		r.Get("/companies/{name}", s.handleGetCompany)
		r.Get("/searches/recent", s.handleRecentSearches)
	})

	if pages != nil {
		pages.Mount(r)
	}
	s.router = r

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info().Msg("server stopped")
	return nil
}

// withRequestID tags every request with a ksuid, reusing one sent by the client
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = ksuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		logger := s.logger.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

// withLogging logs one line per request once the response is written
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		logger := s.requestLogger(r)
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", requestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports whether the store is reachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.companies.Health(r.Context()); err != nil {
		s.requestLogger(r).Error().Err(err).Msg("health check failed")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger returns the request-scoped logger, falling back to the server logger
func (s *Server) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a {"message": ...} error body
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, types.ErrorResponse{Message: message})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.requestLogger(r).Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Time("reset_at", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
