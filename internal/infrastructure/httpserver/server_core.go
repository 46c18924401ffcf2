package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/ports"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type ServerDeps struct {
	SearchService  ports.SearchService
	VenueService   ports.VenueService
	PhotoResolver  ports.PhotoResolver
	ImageFetcher   ports.ImageFetcher
	SearchConfig   *config.SearchConfig
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	searchSvc      ports.SearchService
	venueSvc       ports.VenueService
	photos         ports.PhotoResolver
	images         ports.ImageFetcher
	searchCfg      *config.SearchConfig
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		searchSvc:      deps.SearchService,
		venueSvc:       deps.VenueService,
		photos:         deps.PhotoResolver,
		images:         deps.ImageFetcher,
		searchCfg:      deps.SearchConfig,
		healthCheckers: deps.HealthCheckers,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
