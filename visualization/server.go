// Package visualization serves the dashboard: a listing of the scraped CSV
// files and an HTML table preview of any one of them.
package visualization

import (
	"context"
	"fmt"
	"net/http"

	"scraperdashboard/internal/listing"
	"scraperdashboard/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server wires the lister, the page templates and the HTTP routes.
type Server struct {
	echo        *echo.Echo
	config      *utils.Config
	logger      *utils.Logger
	lister      *listing.Lister
	pages       *pages
	static      http.FileSystem
	perfTracker *utils.PerformanceTracker
	version     string
}

// NewServer builds a server from an already loaded configuration. The
// configuration is not modified afterwards.
func NewServer(logger *utils.Logger, config *utils.Config, version string) (*Server, error) {
	p, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	static, err := staticFileSystem(config.Dashboard.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open static files: %w", err)
	}

	s := &Server{
		echo:        echo.New(),
		config:      config,
		logger:      logger,
		lister:      listing.NewLister(logger, config.Dashboard.OutputDirs),
		pages:       p,
		static:      static,
		perfTracker: utils.NewPerformanceTracker(),
		version:     version,
	}
	s.setup()

	return s, nil
}

func (s *Server) setup() {
	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(echo.Context) bool {
			return !s.config.Server.RequestLogging
		},
		Format: "${method} ${uri} status=${status} latency=${latency_human} id=${id}\n",
		Output: s.logger,
	}))

	// Static assets are looked up before the dynamic routes.
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:       ".",
		Filesystem: s.static,
	}))

	e.GET("/", s.HandleIndex)
	e.GET("/view", s.HandleView)
	e.GET("/health", s.HandleHealth)
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on the configured address and blocks until the server
// stops. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	return s.echo.Start(s.config.Addr())
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) GetPerformanceTracker() *utils.PerformanceTracker {
	return s.perfTracker
}

// PreflightCheck verifies configuration and assets before the server starts.
func (s *Server) PreflightCheck() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{"Config Validation", s.config.Validate},
		{"Output Directories", s.checkDirectories},
		{"Static Assets", s.checkStaticAssets},
	}

	for _, c := range checks {
		s.logger.Debug("Running preflight check: %s", c.name)
		if err := c.check(); err != nil {
			return fmt.Errorf("%s check failed: %w", c.name, err)
		}
		s.logger.Debug("%s check passed", c.name)
	}

	return nil
}

// checkDirectories only reports missing output folders; the scrapers may not
// have run yet.
func (s *Server) checkDirectories() error {
	for _, dir := range s.lister.Dirs() {
		if !utils.Exists(dir) {
			s.logger.Info("Output directory %s does not exist yet", dir)
		}
	}
	return nil
}

func (s *Server) checkStaticAssets() error {
	f, err := s.static.Open(stylesheet)
	if err != nil {
		return err
	}
	return f.Close()
}
