package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CaseSim_Go/internal/duel"
	"github.com/osse101/CaseSim_Go/internal/handler"
	"github.com/osse101/CaseSim_Go/internal/harvest"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/lootbox"
	"github.com/osse101/CaseSim_Go/internal/metrics"
	"github.com/osse101/CaseSim_Go/internal/repository"
	"github.com/osse101/CaseSim_Go/internal/sse"
	"github.com/osse101/CaseSim_Go/internal/user"
)

// Options configures the listener and middleware
type Options struct {
	Port           int
	APIKey         string // empty disables authentication
	TrustedProxies []string
	MaxBodyBytes   int64
	Limits         RateLimits
	Version        string
}

// Dependencies are the services the routes are served from
type Dependencies struct {
	Pinger  repository.Pinger // nil for in-memory storage
	Economy handler.EconomyReader
	Cases   lootbox.Service
	Battles duel.Service
	Harvest harvest.Service
	Users   user.Service
	Hub     *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(opts Options, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.Limits)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(maxBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Pinger))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	caseHandler := handler.NewCaseHandler(deps.Cases)
	battleHandler := handler.NewBattleHandler(deps.Battles)
	userHandler := handler.NewUserHandler(deps.Users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", handler.NewStateHandler(deps.Economy, deps.Cases, deps.Battles, deps.Users).GetState)
		r.Get("/inventory", handler.NewInventoryHandler(deps.Economy).GetInventory)

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", caseHandler.ListCases)
			r.Get("/{caseID}", caseHandler.GetCase)
			r.Post("/{caseID}/open", caseHandler.OpenCase)
		})

		r.Post("/battle", battleHandler.Battle)
		r.Post("/harvest", handler.NewHarvestHandler(deps.Harvest).Harvest)

		r.Route("/user", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Post("/login", userHandler.Login)
			r.Delete("/logout", userHandler.Logout)
		})

		if deps.Hub != nil {
			r.Get("/events", sse.Handler(deps.Hub))
		}
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps event streams working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.ContainsFunc(QuietPaths, func(p string) bool { return strings.HasPrefix(r.URL.Path, p) }) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"query", redactQuery(r.URL.Query()),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(k) != "" {
			out.Set(k, RedactedValue)
		}
	}
	return out
}

func redactQuery(q url.Values) string {
	if q.Has(QueryParamAPIKey) {
		q.Set(QueryParamAPIKey, RedactedValue)
	}
	return q.Encode()
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
