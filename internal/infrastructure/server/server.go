package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/lensfs/lens/backend/internal/api/http"
	"github.com/lensfs/lens/backend/internal/api/middleware"
	"github.com/lensfs/lens/backend/internal/api/ws"
	"github.com/lensfs/lens/backend/internal/explorer"
	"github.com/lensfs/lens/backend/internal/infrastructure/config"
	"github.com/lensfs/lens/backend/internal/infrastructure/logging"
	"github.com/lensfs/lens/backend/internal/infrastructure/monitoring"
	explorerProvider "github.com/lensfs/lens/backend/internal/providers/explorer"
	"github.com/lensfs/lens/backend/internal/service"
)

// Server wraps the HTTP server and the engine components
type Server struct {
	router   *gin.Engine
	scanner  *explorer.Scanner
	registry *service.Registry
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Lens Explorer Engine",
		zap.String("port", cfg.Server.Port),
		zap.String("root", cfg.Explorer.Root),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Engine components
	lister := explorer.NewLister(logger)
	cache := explorer.NewCache(lister, cfg.Cache.MaxEntries, cfg.Cache.TTL, metrics)
	scanner := explorer.NewScanner(logger, cfg.Explorer.SkipSubstrings)
	engine := explorer.NewEngine(scanner)
	opener := explorer.NewOpener(logger)

	// Register the explorer provider
	serviceRegistry := service.NewRegistry()
	provider := explorerProvider.NewProvider(&explorerProvider.ExplorerOps{
		Root:    cfg.Explorer.Root,
		Cache:   cache,
		Scanner: scanner,
		Engine:  engine,
		Opener:  opener,
		Metrics: metrics,
	})
	if err := serviceRegistry.Register(provider); err != nil {
		return nil, err
	}

	// Begin the initial root scan; searches served before it finishes see a
	// partial snapshot and the health endpoint reports "initializing".
	if cfg.Explorer.ScanOnStart {
		scan := scanner.Start(cfg.Explorer.Root, false)
		metrics.RecordScanStarted()
		go func() {
			<-scan.Done()
			metrics.RecordScanFinished(string(scan.State()))
			metrics.SetIndexEntries(scan.Index.Len())
			for _, w := range scan.Warnings() {
				metrics.RecordScanWarning(string(w.Kind))
			}
		}()
		logger.Info("Initial scan started",
			zap.String("scan_id", scan.ID),
			zap.String("root", scan.Root),
		)
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := apihttp.NewHandlers(cfg.Explorer.Root, cache, scanner, engine, opener, serviceRegistry, metrics)
	wsHandler := ws.NewHandler(cfg.Explorer.Root, scanner, engine, metrics, logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Filesystem operations
	router.GET("/fs/list", handlers.ListDirectory)
	router.POST("/fs/refresh", handlers.RefreshListing)
	router.GET("/fs/search", handlers.SearchFiles)
	router.POST("/fs/open", handlers.OpenFile)
	router.POST("/fs/scan", handlers.StartScan)
	router.GET("/fs/scan/:id", handlers.GetScan)
	router.DELETE("/fs/scan/:id", handlers.CancelScan)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		scanner:  scanner,
		registry: serviceRegistry,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// Stop running scans; their partial snapshots are discarded with the
	// process.
	s.scanner.Shutdown()
	s.logger.Info("Scans stopped")

	// Sync logger before exit
	s.logger.Sync()

	return nil
}
