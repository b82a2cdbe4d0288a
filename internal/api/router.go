package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/playlog/playlog-api/docs"
	"github.com/playlog/playlog-api/internal/api/handler"
	"github.com/playlog/playlog-api/internal/api/middleware"
	"github.com/playlog/playlog-api/internal/core/service"
	"github.com/playlog/playlog-api/internal/infrastructure/catalog"
	"github.com/playlog/playlog-api/internal/infrastructure/config"
	mongodb "github.com/playlog/playlog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/playlog/playlog-api/internal/infrastructure/db/redis"
	"github.com/playlog/playlog-api/internal/infrastructure/queue"
)

// NewRouter wires repositories, services and handlers into an Echo instance
// with all routes registered. The returned Dispatcher must be started by the
// caller before the server accepts import traffic.
func NewRouter(cfg *config.Config, client *mongo.Client, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("playlog"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	tokenRepo := mongodb.NewRefreshTokenRepository(db)
	gameRepo := mongodb.NewGameRepository(db)
	playRepo := mongodb.NewPlayRepository(db)

	// --- Services ---
	hasher := service.NewPasswordHasher(0)
	signer := service.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	sessionService := service.NewSessionService(userRepo, tokenRepo, hasher, signer, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), log)
	userService := service.NewUserService(userRepo, tokenRepo, playRepo, log)
	gameService := service.NewGameService(gameRepo, log)
	playService := service.NewPlayService(playRepo, gameRepo, log)

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		APIKey:  cfg.Catalog.APIKey,
	})
	catalogCache := redisdb.NewCatalogCache(rdb, cfg.Catalog.CacheTTL())
	catalogService := service.NewCatalogService(catalogClient, catalogCache, log)

	dispatcher := queue.NewDispatcher(0, playService, log)

	// --- Handlers ---
	cookies := handler.NewCookieWriter(cfg.Cookie)
	authHandler := handler.NewAuthHandler(sessionService, cookies, log)
	userHandler := handler.NewUserHandler(sessionService, userService, cookies, log)
	gameHandler := handler.NewGameHandler(gameService, log)
	playHandler := handler.NewPlayHandler(playService, dispatcher, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	healthHandler := handler.NewHealthHandler(client, rdb)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		CookieName: cfg.Cookie.AccessName,
	})

	// --- Public routes ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.POST("/auth/token", authHandler.Token)
	v1.POST("/users/register", userHandler.Register)

	// --- Authenticated routes ---
	me := v1.Group("/users", requireAuth)
	me.GET("/me", userHandler.Me)
	me.PUT("/me", userHandler.UpdateMe)
	me.DELETE("/me", userHandler.DeleteMe)

	games := v1.Group("/games", requireAuth)
	games.POST("", gameHandler.Create)
	games.GET("", gameHandler.List)
	games.GET("/:id", gameHandler.Get)
	games.PUT("/:id", gameHandler.Update)
	games.DELETE("/:id", gameHandler.Delete)

	plays := v1.Group("/plays", requireAuth)
	plays.POST("", playHandler.Record)
	plays.POST("/import", playHandler.Import)
	plays.GET("", playHandler.List)
	plays.GET("/:id", playHandler.Get)
	plays.PUT("/:id", playHandler.Update)
	plays.DELETE("/:id", playHandler.Delete)

	v1.GET("/catalog/search", catalogHandler.Search, requireAuth)

	return e, dispatcher
}
