package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	api_middleware "github.com/thesrcielos/HeroHigherLower/api/middleware"
	"github.com/thesrcielos/HeroHigherLower/api/gql"
	v1 "github.com/thesrcielos/HeroHigherLower/api/v1"
	"github.com/thesrcielos/HeroHigherLower/internal/config"
	"github.com/thesrcielos/HeroHigherLower/internal/game"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
	"github.com/thesrcielos/HeroHigherLower/pkg/db"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("error loading config")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.Init(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("error connecting to storage")
	}
	if err := db.DB.AutoMigrate(&user.User{}, &hero.Hero{}); err != nil {
		logger.Fatal().Err(err).Msg("error migrating database")
	}

	user.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	userRepo := user.NewUserRepository(db.DB, cfg.BcryptCost)
	heroRepo := hero.NewCachedRepository(hero.NewHeroRepository(db.DB), db.Rdb, cfg.Redis.CacheTTL)

	v1.UserService = user.NewUserService(userRepo)
	v1.HeroService = hero.NewHeroService(heroRepo)
	v1.HigherLowerService = game.NewHigherLowerService(
		game.NewMatchupSelector(heroRepo, nil, cfg.MatchupPoolSize),
		game.NewGuessValidator(heroRepo),
		userRepo,
	)

	schema, err := gql.NewSchema(v1.UserService, v1.HeroService, v1.HigherLowerService)
	if err != nil {
		logger.Fatal().Err(err).Msg("error building graphql schema")
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = v1.NewHTTPErrorHandler(e, logger)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Warn().Err(v.Error)
			}
			event.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Dur("latency", v.Latency).Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(api_middleware.RateLimiter(cfg.RateLimit, cfg.RateBurst))

	v1.RegisterRoutes(e)
	e.Any("/graphql", gql.Handler(schema), api_middleware.OptionalJWTMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
