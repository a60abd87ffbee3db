// Package api provides the HTTP API server for the NJ Trades dashboard.
//
// It exposes read endpoints for institutions, 13F holdings, congress and
// insider trades, search, trending tickers and stats, plus the live update
// channel at /ws.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/ingest/congress"
	"github.com/jaideeprtx/nj-trades/internal/ingest/sec13f"
	"github.com/jaideeprtx/nj-trades/internal/logging"
	"github.com/jaideeprtx/nj-trades/internal/metrics"
	"github.com/jaideeprtx/nj-trades/internal/notify"
	"github.com/jaideeprtx/nj-trades/internal/store"
	"github.com/jaideeprtx/nj-trades/pkg/models"
	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

const (
	defaultLimit     = 50
	defaultBuysLimit = 20
	maxLimit         = 500
	minSearchLen     = 2
)

// Store is everything the handlers read, plus the writes used by seeding.
type Store interface {
	sec13f.Store

	Ping(ctx context.Context) error
	GetInstitution(ctx context.Context, cik string) (*models.Institution, error)
	LatestHoldings(ctx context.Context, cik string) ([]models.Holding, error)
	HoldingsHistory(ctx context.Context, cik string) ([]models.Holding, error)

	RecentCongressTrades(ctx context.Context, limit, offset int) ([]models.CongressTrade, error)
	CongressMembers(ctx context.Context) ([]models.MemberActivity, error)
	CongressByMember(ctx context.Context, name string) ([]models.CongressTrade, error)
	CongressByTicker(ctx context.Context, ticker string) ([]models.CongressTrade, error)

	RecentInsiderTrades(ctx context.Context, limit, offset int) ([]models.InsiderTrade, error)
	InsiderBuys(ctx context.Context, limit int) ([]models.InsiderTrade, error)
	InsiderByTicker(ctx context.Context, ticker string) ([]models.InsiderTrade, error)

	Search(ctx context.Context, q string) (*models.SearchResults, error)
	Trending(ctx context.Context, now time.Time) ([]models.TrendingTicker, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	store  Store
	hub    *notify.Hub
	sample []sec13f.DemoPortfolio
	log    *zap.Logger
	now    func() time.Time
}

// NewServer creates a configured API server with all routes and middleware.
// The hub must be running for /ws clients to receive updates. sample is
// written by POST /api/seed.
func NewServer(cfg *config.Config, st Store, hub *notify.Hub, sample []sec13f.DemoPortfolio, log *zap.Logger) *Server {
	srv := &Server{
		cfg:    cfg,
		store:  st,
		hub:    hub,
		sample: sample,
		log:    log,
		now:    time.Now,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	if s.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, s.cfg.Metrics.Path, metrics.Handler())
	}

	// Long-lived; kept out of the request timeout.
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Institutions (13F)
		r.Get("/institutions", s.handleInstitutions)
		r.Get("/institutions/{cik}", s.handleInstitution)
		r.Get("/institutions/{cik}/history", s.handleHoldingsHistory)

		// Congress
		r.Get("/congress", s.handleCongress)
		r.Get("/congress/members", s.handleCongressMembers)
		r.Get("/congress/member/{name}", s.handleCongressMember)
		r.Get("/congress/member/{name}/summary", s.handleCongressMemberSummary)
		r.Get("/congress/ticker/{ticker}", s.handleCongressTicker)

		// Insider
		r.Get("/insider", s.handleInsider)
		r.Get("/insider/buys", s.handleInsiderBuys)
		r.Get("/insider/{ticker}", s.handleInsiderTicker)

		// Search & analytics
		r.Get("/search", s.handleSearch)
		r.Get("/trending", s.handleTrending)
		r.Get("/stats", s.handleStats)
		r.Post("/seed", s.handleSeed)
	})

	if dir := s.cfg.Server.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.mountSPA(r, os.DirFS(dir))
		} else {
			s.log.Warn("static dir not found, dashboard not served", zap.String("dir", dir))
		}
	}

	return r
}

// mountSPA serves the built dashboard as a single-page app. Files that exist
// are served directly; all other paths fall back to index.html.
func (s *Server) mountSPA(r chi.Router, distFS fs.FS) {
	fileServer := http.FileServerFS(distFS)

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		rPath := strings.TrimPrefix(r.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		f, err := distFS.Open(rPath)
		if err != nil {
			serveIndexHTML(w, distFS)
			return
		}
		f.Close()

		if strings.HasPrefix(rPath, "assets/") {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else if strings.HasSuffix(rPath, ".html") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}

		fileServer.ServeHTTP(w, r)
	})
}

func serveIndexHTML(w http.ResponseWriter, distFS fs.FS) {
	data, err := fs.ReadFile(distFS, "index.html")
	if err != nil {
		http.Error(w, "dashboard not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Response types
// ============================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Clients   int       `json:"clients"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Timestamp: s.now().UTC()}
	if s.hub != nil {
		resp.Clients = s.hub.ClientCount()
	}
	if err := s.store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	institutions, err := s.store.ListInstitutions(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(institutions))
}

func (s *Server) handleInstitution(w http.ResponseWriter, r *http.Request) {
	cik := chi.URLParam(r, "cik")
	if !utils.IsNumeric(cik) {
		writeError(w, http.StatusNotFound, "Institution not found")
		return
	}
	inst, err := s.store.GetInstitution(r.Context(), cik)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Institution not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	holdings, err := s.store.LatestHoldings(r.Context(), cik)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.InstitutionDetail{Institution: *inst, Holdings: nonNil(holdings)})
}

func (s *Server) handleHoldingsHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.store.HoldingsHistory(r.Context(), chi.URLParam(r, "cik"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(history))
}

func (s *Server) handleCongress(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryOffset(r)
	trades, err := s.store.RecentCongressTrades(r.Context(), limit, offset)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleCongressMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.CongressMembers(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(members))
}

func (s *Server) handleCongressMember(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.CongressByMember(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleCongressMemberSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	trades, err := s.store.CongressByMember(r.Context(), name)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, congress.MemberValue(name, trades))
}

func (s *Server) handleCongressTicker(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.CongressByTicker(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleInsider(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLimit)
	offset := queryOffset(r)
	trades, err := s.store.RecentInsiderTrades(r.Context(), limit, offset)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleInsiderBuys(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.InsiderBuys(r.Context(), queryInt(r, "limit", defaultBuysLimit))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleInsiderTicker(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.InsiderByTicker(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trades))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len([]rune(q)) < minSearchLen {
		writeError(w, http.StatusBadRequest, "Query must be at least 2 characters")
		return
	}
	results, err := s.store.Search(r.Context(), q)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := s.store.Trending(r.Context(), s.now())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trending))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	n, err := sec13f.Seed(r.Context(), s.store, s.sample)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.log.Info("seeded sample holdings", zap.Int("holdings", n), zap.Int("institutions", len(s.sample)))
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Sample data seeded"})
}

// ============================================================
// Helpers
// ============================================================

// queryInt reads a positive integer query parameter. Missing, malformed and
// non-positive values fall back to def; values above maxLimit are capped.
func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxLimit)
}

func queryOffset(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
