// Package http exposes the ledger as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Claipousse/LedgerOne/internal/core"
	"github.com/Claipousse/LedgerOne/internal/services"
)

type Server struct {
	http.Server

	transactions *services.TransactionService
	categories   *services.CategoryService
	settings     *services.SettingsService
	insights     *services.InsightsService
	alerts       *services.AlertService
	importer     *services.ImportService

	rateLimiter *rateLimiter

	// Aggregates are cheap to recompute but queried often; short TTL
	// keeps dashboards snappy without risking stale data after writes.
	summaryCache *lruCache[core.Summary]
	alertsCache  *lruCache[[]core.Alert]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// Services bundles the dependencies NewServer wires into routes.
type Services struct {
	Transactions *services.TransactionService
	Categories   *services.CategoryService
	Settings     *services.SettingsService
	Insights     *services.InsightsService
	Alerts       *services.AlertService
	Importer     *services.ImportService
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Services) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		transactions:     deps.Transactions,
		categories:       deps.Categories,
		settings:         deps.Settings,
		insights:         deps.Insights,
		alerts:           deps.Alerts,
		importer:         deps.Importer,
		rateLimiter:      newRateLimiter(),
		summaryCache:     newLRUCache[core.Summary](100, 5*time.Minute),
		alertsCache:      newLRUCache[[]core.Alert](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{id}", s.withMiddleware(s.handleGetTransaction))
	mux.HandleFunc("PATCH /api/transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("GET /api/categories/{id}", s.withMiddleware(s.handleGetCategory))
	mux.HandleFunc("PATCH /api/categories/{id}", s.withMiddleware(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.withMiddleware(s.handleUpdateSettings))

	mux.HandleFunc("GET /api/insights/summary", s.withMiddleware(s.handleMonthSummary))
	mux.HandleFunc("GET /api/insights/monthly-total", s.withMiddleware(s.handleMonthlyTotal))
	mux.HandleFunc("GET /api/insights/category-breakdown", s.withMiddleware(s.handleCategoryBreakdown))
	mux.HandleFunc("GET /api/insights/trend", s.withMiddleware(s.handleTrend))

	mux.HandleFunc("GET /api/alerts", s.withMiddleware(s.handleAlerts))
	mux.HandleFunc("GET /api/categories/{id}/alert", s.withMiddleware(s.handleCategoryAlert))
	mux.HandleFunc("POST /api/import", s.withMiddleware(s.handleImport))

	return s
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summariesCleaned := s.summaryCache.CleanExpired()
			alertsCleaned := s.alertsCache.CleanExpired()
			if summariesCleaned > 0 || alertsCleaned > 0 {
				slog.Debug("Cache cleanup completed",
					"summary_entries_removed", summariesCleaned,
					"alert_entries_removed", alertsCleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// invalidateCaches drops cached aggregates after any write.
func (s *Server) invalidateCaches() {
	s.summaryCache.Clear()
	s.alertsCache.Clear()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting, and request
// logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
