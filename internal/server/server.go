package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"findex/internal/api"
	"findex/internal/config"
	"findex/internal/deps"
	"findex/internal/journal"
	"findex/internal/logging"
)

// ErrAlreadyRunning is returned when another server holds the lock file.
var ErrAlreadyRunning = errors.New("findex server already running")

// Fetcher is the yt-dlp collaborator used by the API services.
type Fetcher interface {
	api.SubtitleFetcher
	api.InfoFetcher
}

// Options wires the server's collaborators.
type Options struct {
	Fetcher Fetcher
	// Journal is optional; nil disables request recording.
	Journal *journal.Store
	Version string
}

// Server is the findex HTTP API server.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	bind     string
	lockPath string
	lock     *flock.Flock

	subs     *api.SubtitleService
	info     *api.InfoService
	ask      *api.AskService
	history  *api.HistoryService
	health   *api.HealthService
	handler  http.Handler
	server   *http.Server
	listener net.Listener

	mu       sync.Mutex
	done     chan struct{}
	stopOnce sync.Once
}

// New constructs a Server from cfg and opts.
func New(cfg *config.Config, opts Options, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("server: fetcher is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "api-server")

	var recorder api.Recorder
	var reader api.JournalReader
	if opts.Journal != nil {
		recorder = opts.Journal
		reader = opts.Journal
	}

	info := api.NewInfoService(opts.Fetcher, opts.Fetcher, recorder, logger).WithBudget(cfg.FetchTimeout())
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		bind:     strings.TrimSpace(cfg.Server.Bind),
		lockPath: cfg.LockPath(),
		subs:     api.NewSubtitleService(opts.Fetcher, recorder, logger, cfg.Fetch.DefaultLanguage),
		info:     info,
		ask:      api.NewAskService(info, recorder, logger),
		history:  api.NewHistoryService(reader),
		health:   api.NewHealthService(deps.Requirements(cfg), opts.Version, opts.Journal != nil),
	}
	s.lock = flock.New(s.lockPath)
	s.handler = s.routes()
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, h)
		mux.HandleFunc(path+"/", h)
	}
	handle(api.RouteSubs, s.handleSubs)
	handle(api.RouteVideoInfo, s.handleVideoInfo)
	handle(api.RouteAsk, s.handleAsk)
	handle(api.RouteHealth, s.handleHealth)
	handle(api.RouteRequests, s.handleRequests)

	var h http.Handler = mux
	h = authMiddleware(s.cfg.Server.APIToken, h)
	h = corsMiddleware(s.cfg.Server.CORSOrigins, h)
	h = accessLogMiddleware(s.logger, h)
	h = requestIDMiddleware(h)
	return h
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start acquires the lock file, begins listening and serves in the
// background. Cancelling ctx shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("server already started")
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, s.lockPath)
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	s.done = make(chan struct{})

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "api server stopped unexpectedly", "server_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "restart findex serve"),
			)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
		logging.Bool("auth", s.cfg.Server.APIToken != ""),
	)
	return nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down, waiting up to the configured shutdown timeout
// for in-flight requests, and releases the lock.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		timeout := time.Duration(s.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("api server shutdown incomplete",
				logging.String(logging.FieldEventType, "shutdown_timeout"),
				logging.String(logging.FieldErrorHint, "in-flight requests were cut off"),
				logging.Error(err),
			)
		}
		s.mu.Lock()
		if s.done != nil {
			close(s.done)
		}
		s.mu.Unlock()
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release server lock",
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.String(logging.FieldErrorHint, "remove the lock file manually"),
				logging.Error(err),
			)
		}
		s.logger.Info("api server stopped")
	})
}
