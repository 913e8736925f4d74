package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/playlistify/music-api/docs"
	"github.com/playlistify/music-api/internal/api/handler"
	"github.com/playlistify/music-api/internal/api/middleware"
	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

// Deps holds everything the HTTP layer needs. Services are built by the
// caller so the router stays free of storage concerns.
type Deps struct {
	Log       zerolog.Logger
	Auth      ports.AuthService
	Users     ports.UserService
	Songs     ports.SongService
	Playlists ports.PlaylistService
	Tokens    ports.TokenService
	Gate      ports.Authorizer

	// Health maps a dependency name to its readiness check. Nil entries are skipped.
	Health map[string]handler.Pinger

	// Metrics is the registry for HTTP metrics and /metrics. Nil means the
	// Prometheus default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "playlist",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authn := middleware.Auth(d.Tokens)
	adminOnly := middleware.RBAC(d.Gate, domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	songHandler := handler.NewSongHandler(d.Songs)
	playlistHandler := handler.NewPlaylistHandler(d.Playlists)
	healthHandler := handler.NewHealthHandler(d.Health, d.Log)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Users ---
	users := e.Group("/users")
	users.POST("/sign-up", authHandler.SignUp)
	users.POST("/sign-up/admin", authHandler.SignUpAdmin, authn, adminOnly)
	users.POST("/login", authHandler.Login)

	users.GET("", userHandler.List, authn)
	users.GET("/me", userHandler.Me, authn)
	users.PATCH("/me", userHandler.UpdateMe, authn)
	users.DELETE("/me", userHandler.DeleteMe, authn)

	users.GET("/:id", userHandler.Get, authn, adminOnly)
	users.PATCH("/:id", userHandler.Update, authn, adminOnly)
	users.DELETE("/:id", userHandler.Delete, authn, adminOnly)

	// --- Songs: reads are public, writes need a token ---
	songs := e.Group("/songs")
	songs.POST("", songHandler.Create, authn)
	songs.GET("/count", songHandler.Count)
	songs.GET("", songHandler.List)
	songs.GET("/:id", songHandler.Get)
	songs.PATCH("/:id", songHandler.Update, authn)
	songs.PUT("/:id", songHandler.Replace, authn)
	songs.DELETE("/:id", songHandler.Delete, authn)

	// --- Playlists ---
	playlists := e.Group("/playlists")
	playlists.POST("", playlistHandler.Create, authn)
	playlists.GET("/count", playlistHandler.Count)
	playlists.GET("", playlistHandler.List)
	playlists.GET("/:id", playlistHandler.Get)
	playlists.PATCH("/:id", playlistHandler.Update, authn)
	playlists.PUT("/:id", playlistHandler.Replace, authn)
	playlists.DELETE("/:id", playlistHandler.Delete, authn)

	return e
}
