package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/HeroHigherLower/api/middleware"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

var UserService *user.UserService

func RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/signup", SignupHandler)
	g.POST("/login", LoginHandler)
	g.GET("/stats/:id", GetUserStatsHandler)
	g.GET("/me", MeHandler, auth)
	g.PUT("/me/password", ChangePasswordHandler, auth)
}

func SignupHandler(c echo.Context) error {
	var req user.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	auth, err := UserService.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, auth)
}

func LoginHandler(c echo.Context) error {
	var req user.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	auth, err := UserService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, auth)
}

func GetUserStatsHandler(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	stats, err := UserService.GetUserStats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func MeHandler(c echo.Context) error {
	identity, ok := api_middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	me, err := UserService.GetUser(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	if me == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, me)
}

func ChangePasswordHandler(c echo.Context) error {
	identity, ok := api_middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	var req user.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	updated, err := UserService.ChangePassword(c.Request().Context(), identity.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
