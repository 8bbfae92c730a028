package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/HeroHigherLower/api/middleware"
	"github.com/thesrcielos/HeroHigherLower/internal/game"
)

var HigherLowerService *game.HigherLowerService

func RegisterHigherLowerRoutes(g *echo.Group) {
	g.POST("/sessions", StartSessionHandler)
	g.POST("/guesses", ValidateGuessHandler)
	g.POST("/sessions/end", EndSessionHandler)
}

func RegisterDraftRoutes(g *echo.Group) {
	g.POST("/results", DraftResultHandler)
}

func StartSessionHandler(c echo.Context) error {
	identity, ok := api_middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	var req game.StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	session, err := HigherLowerService.StartSession(c.Request().Context(), identity.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

func ValidateGuessHandler(c echo.Context) error {
	var req game.GuessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	result, err := HigherLowerService.ValidateGuess(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func EndSessionHandler(c echo.Context) error {
	identity, ok := api_middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	var req game.EndSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	summary, err := HigherLowerService.EndSession(c.Request().Context(), identity.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

type DraftResultRequest struct {
	Won *bool `json:"won"`
}

func DraftResultHandler(c echo.Context) error {
	identity, ok := api_middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	var req DraftResultRequest
	if err := c.Bind(&req); err != nil || req.Won == nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	updated, err := UserService.RecordDraftResult(c.Request().Context(), identity.ID, *req.Won)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
