package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/NamixOS/backend/internal/api/http"
	"github.com/GriffinCanCode/NamixOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/NamixOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/power"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/NamixOS/backend/internal/domain/wallpaper"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/browser"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/files"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/music"
	"github.com/GriffinCanCode/NamixOS/backend/internal/providers/terminal"
)

// StreamPath is the WebSocket endpoint
const StreamPath = "/stream"

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	http     *http.Server
	shell    *shell.Manager
	power    *power.Sequencer
	music    *music.Player
	hub      *ws.Hub
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	registry *prometheus.Registry

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing NamixOS shell",
		zap.String("addr", cfg.Addr()),
		zap.String("prefs", cfg.Prefs.Path),
	)

	// Metrics first (needed by other components)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	tracer := tracing.New("namixos-shell", logger.Component("trace"))

	// App catalog
	cat := catalog.Default()
	if cfg.Shell.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.Shell.CatalogPath)
		if err != nil {
			tracer.Close()
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = loaded
	}

	// Lifecycle core
	manager := shell.NewManager(nil, shell.Config{
		ZOrderBase:       cfg.Shell.ZOrderBase,
		RecentCapacity:   cfg.Shell.RecentCapacity,
		LongPress:        cfg.Shell.LongPress,
		MobileBreakpoint: cfg.Shell.MobileBreakpoint,
		MenuWidth:        cfg.Shell.MenuWidth,
	}).
		WithLabels(cat).
		WithLogger(logger.Component("shell")).
		WithMetrics(metrics)

	for _, app := range cat.Apps() {
		if !manager.Register(app.ID, app.Window) {
			logger.Warn("Skipping duplicate app", zap.String("app_id", app.ID))
		}
	}
	logger.Info("Catalog loaded", zap.Int("apps", len(cat.Apps())))

	// Preferences are read once at load
	wp := wallpaper.Load(
		wallpaper.NewTOMLStore(cfg.Prefs.Path),
		cfg.Prefs.WallpaperKey,
		logger.Component("wallpaper"),
	)

	hub := ws.NewHub(logger.Component("ws"), metrics)
	manager.Subscribe(hub)

	seq := power.NewSequencer(manager, power.Config{
		Splash:       cfg.Power.Splash,
		StandbyBlack: cfg.Power.StandbyBlack,
		RebootBlack:  cfg.Power.RebootBlack,
	}).
		WithLogger(logger.Component("power")).
		WithMetrics(metrics)
	seq.OnChange(hub.PowerChanged)

	// Bundled apps
	folders := files.NewProvider()
	term := terminal.NewProvider(manager, folders).
		WithWindows(cat).
		WithLogger(logger.Component("terminal")).
		WithMetrics(metrics)
	player := music.NewPlayer(music.Config{
		Tick:   cfg.Music.Tick,
		Step:   cfg.Music.Step,
		Length: cfg.Music.TrackLength,
	})

	// Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		limits.SkipPaths = []string{StreamPath, "/metrics"}
		router.Use(middleware.RateLimit(limits))
	}

	handlers := api.NewHandlers(api.Deps{
		Shell:     manager,
		Power:     seq,
		Catalog:   cat,
		Wallpaper: wp,
		Terminal:  term,
		Files:     folders,
		Music:     player,
		Browser:   browser.New(),
		Metrics:   metrics,
		Logger:    logger.Component("http"),
	})
	api.RegisterRoutes(router, handlers)

	wsHandler := ws.NewHandler(manager, term, hub, logger.Component("ws"))
	router.GET(StreamPath, wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:   router,
		shell:    manager,
		power:    seq,
		music:    player,
		hub:      hub,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		registry: registry,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.handler = s.compress(router)
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// compress gzips every response except the WebSocket upgrade
func (s *Server) compress(next http.Handler) http.Handler {
	if !s.config.Server.GzipEnabled {
		return next
	}
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == StreamPath {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Shell returns the lifecycle core
func (s *Server) Shell() *shell.Manager {
	return s.shell
}

// Power returns the power sequencer
func (s *Server) Power() *power.Sequencer {
	return s.power
}

// Run boots the shell and serves HTTP until Close
func (s *Server) Run() error {
	s.power.Boot()
	go s.music.Run(s.ctx, s.hub.MusicTick)

	s.logger.Info("Starting HTTP server", zap.String("addr", s.config.Addr()))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.cancel()
	s.power.Stop()

	var err error
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(shutdownErr))
		err = fmt.Errorf("failed to shut down http server: %w", shutdownErr)
	}

	s.tracer.Close()

	// Sync logger before exit
	s.logger.Close()

	return err
}
