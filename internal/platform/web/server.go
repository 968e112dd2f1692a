// Package web serves the arcade catalog and static game files over HTTP.
//
// The static root is laid out as:
//
//	<root>/home/     landing page, served at /
//	<root>/games/    browser builds, served at /games/
//	<root>/assets/   thumbnails and media, served at /assets/
//
// The catalog itself is served as JSON at /games.json.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vovakirdan/hue-arcade/internal/catalog"
)

// DefaultPort is used when neither a flag nor PORT selects one.
const DefaultPort = "3000"

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on. Empty means ":" + PORT.
	Address string

	// StaticDir is the root holding home/, games/ and assets/.
	StaticDir string

	// CatalogPath is an optional games.json merged into the registry entries.
	// If empty, <StaticDir>/games.json is used when present.
	CatalogPath string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{StaticDir: "./public"}
}

// LoadEnv reads a .env file into the process environment. A missing file
// is not an error; variables already set are never overridden.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("web: cannot load %s: %w", path, err)
	}
	return nil
}

// ResolveAddress picks the listen address: an explicit address wins, then
// the PORT environment variable, then DefaultPort.
func ResolveAddress(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":" + DefaultPort
}

// Server serves the catalog and static files.
type Server struct {
	config  Config
	entries []catalog.Entry
	logger  *log.Logger
	server  *http.Server
}

// NewServer creates a server. It fails if an explicit catalog file is
// unreadable; a missing default games.json is ignored.
func NewServer(cfg Config) (*Server, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-http",
	})

	entries := catalog.FromRegistry()
	catalogPath := cfg.CatalogPath
	if catalogPath == "" && cfg.StaticDir != "" {
		def := filepath.Join(cfg.StaticDir, "games.json")
		if _, err := os.Stat(def); err == nil {
			catalogPath = def
		}
	}
	if catalogPath != "" {
		extra, err := catalog.Load(catalogPath)
		if err != nil {
			return nil, err
		}
		entries = catalog.Merge(entries, extra)
	}

	cfg.Address = ResolveAddress(cfg.Address)
	s := &Server{
		config:  cfg,
		entries: entries,
		logger:  logger,
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routing handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/games.json", s.handleCatalog)

	root := s.config.StaticDir
	mux.Handle("/games/", http.StripPrefix("/games/", http.FileServer(http.Dir(filepath.Join(root, "games")))))
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(root, "assets")))))
	mux.Handle("/", http.FileServer(http.Dir(filepath.Join(root, "home"))))

	return s.logRequests(mux)
}

// handleCatalog writes the catalog, filtered by the optional q parameter.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries := catalog.Filter(s.entries, r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "application/json")
	if err := catalog.Encode(w, entries); err != nil {
		s.logger.Error("catalog encode failed", "error", err)
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Run serves until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
	}
	s.logger.Info("starting HTTP server", "address", ln.Addr().String(), "static", s.config.StaticDir)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}

// Entries returns the catalog served by this server.
func (s *Server) Entries() []catalog.Entry {
	return s.entries
}
