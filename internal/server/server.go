package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/locale"
	"github.com/tartampluch/go-age/internal/metrics"
)

// cacheItem stores the last rendered calendar and its ETag.
type cacheItem struct {
	data []byte
	etag string
}

// Server is the browser and JSON front end of the age calculator.
type Server struct {
	Settings config.Settings
	Clock    engine.Clock
	Catalog  *locale.Catalog
	Metrics  *metrics.Metrics

	// lastCalendar uses atomic.Pointer for lock-free reads.
	// Calendar clients poll the same feed repeatedly, so the last rendering
	// is kept and served again while its ETag is unchanged.
	lastCalendar atomic.Pointer[cacheItem]
}

// New creates a server with the real clock, the embedded catalogs and a
// fresh metrics registry.
func New(settings config.Settings) *Server {
	return &Server{
		Settings: settings,
		Clock:    engine.RealClock{},
		Catalog:  locale.NewCatalog(),
		Metrics:  metrics.New(),
	}
}

// Handler wires every route with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(latency(s.Metrics))

	r.Get(config.RouteRoot, s.handleFormPage)
	r.Post(config.RouteRoot, s.handleFormSubmit)
	r.Get(config.RouteAPIDifference, s.handleDifference)
	r.Get(config.RouteAPICalendar, s.handleCalendar)
	r.Get(config.RouteHealth, handleHealth)
	r.Method(http.MethodGet, config.RouteMetrics, s.Metrics.Handler())

	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Settings.Port); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.Settings.ListenAddr, s.Settings.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// translator picks the response language: ?lang= first, then the
// Accept-Language header, then the configured language.
func (s *Server) translator(r *http.Request) *locale.Translator {
	return s.Catalog.Match(
		r.URL.Query().Get(config.QueryLang),
		r.Header.Get(config.HeaderAcceptLanguage),
		s.Settings.Language,
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = w.Write([]byte(config.HTTPMsgOK))
}
