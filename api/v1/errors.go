package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
)

const INVALID_REQUEST = "invalid request"

// NewHTTPErrorHandler renders AppErrors with their status and message and
// defers everything else to echo.
func NewHTTPErrorHandler(e *echo.Echo, logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		status := apperrors.Status(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		if werr := c.JSON(status, echo.Map{"error": appErr.Message}); werr != nil {
			logger.Error().Err(werr).Msg("error writing error response")
		}
	}
}
