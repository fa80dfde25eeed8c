// Package web serves the puzzle to browsers: an embedded page, a websocket
// per player carrying pointer events in and board states out, and a small
// JSON API for results and display settings.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ResultStore is the part of the results database the web surface uses.
type ResultStore interface {
	storage.ResultSaver
	BestResults(gameID string, limit int) ([]storage.Result, error)
}

// Options configures a Server.
type Options struct {
	Config config.SlidingConfig
	Store  ResultStore // Optional
	Logger *log.Logger // Optional, defaults to log.Default()
	Seed   int64       // Fixed shuffle seed for every session; 0 uses the clock
}

// Server is the HTTP and websocket front end.
type Server struct {
	cfg    config.SlidingConfig
	store  ResultStore
	logger *log.Logger
	seed   int64
	router *mux.Router
}

// NewServer creates a server and registers its routes.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    opts.Config,
		store:  opts.Store,
		logger: logger.WithPrefix("web"),
		seed:   opts.Seed,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/results", s.handleResults).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)

	s.router.HandleFunc("/ws", s.handleWebSocket)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "index.html")
	}).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: cannot serve on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// configResponse is what the page needs to draw and interpret gestures.
type configResponse struct {
	Size     int              `json:"size"`
	MinSwipe float64          `json:"minSwipe"`
	MaxDrag  float64          `json:"maxDrag"`
	Colors   config.WebConfig `json:"colors"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, configResponse{
		Size:     s.cfg.Board.Size,
		MinSwipe: s.cfg.Gesture.MinSwipe,
		MaxDrag:  s.cfg.Gesture.MaxDrag,
		Colors:   s.cfg.Web,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondJSON(w, http.StatusOK, []storage.Result{})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	results, err := s.store.BestResults(sliding.GameID, limit)
	if err != nil {
		s.logger.Error("cannot load results", "error", err)
		respondError(w, http.StatusInternalServerError, "cannot load results")
		return
	}
	if results == nil {
		results = []storage.Result{}
	}
	respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess := newSession(conn, s.cfg, seed, playerName(r), s.store, s.logger)
	go sess.writePump()
	go sess.readPump()
}

// playerName identifies a browser player by remote host.
func playerName(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "web:" + host
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
