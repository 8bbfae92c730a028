package v1

import (
	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/HeroHigherLower/api/middleware"
)

func RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	auth := api_middleware.SetupJWTMiddleware()

	RegisterUserRoutes(api.Group("/users"), auth)
	RegisterHeroRoutes(api.Group("/heroes"))

	hl := api.Group("/higher-lower")
	hl.Use(auth)
	RegisterHigherLowerRoutes(hl)

	draft := api.Group("/draft")
	draft.Use(auth)
	RegisterDraftRoutes(draft)
}
