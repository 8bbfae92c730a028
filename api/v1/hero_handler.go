package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
)

var HeroService *hero.HeroService

func RegisterHeroRoutes(g *echo.Group) {
	g.GET("", ListHeroesHandler)
	g.GET("/:id", GetHeroHandler)
}

func ListHeroesHandler(c echo.Context) error {
	heroes, err := HeroService.ListHeroes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, heroes)
}

func GetHeroHandler(c echo.Context) error {
	h, err := HeroService.MustGetHero(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h)
}
