package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

const identityKey = "identity"

func jwtConfig() echojwt.Config {
	return echojwt.Config{
		TokenLookup: "header:Authorization",
		ContextKey:  identityKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return user.ValidateJWT(auth)
		},
		SuccessHandler: func(c echo.Context) {
			identity, ok := c.Get(identityKey).(*user.Identity)
			if !ok {
				return
			}
			req := c.Request()
			c.SetRequest(req.WithContext(user.WithIdentity(req.Context(), identity)))
		},
	}
}

// SetupJWTMiddleware rejects requests without a valid token.
func SetupJWTMiddleware() echo.MiddlewareFunc {
	config := jwtConfig()
	config.ErrorHandler = func(c echo.Context, err error) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return echojwt.WithConfig(config)
}

// OptionalJWTMiddleware attaches the identity when the token is valid and
// lets the request through anonymously otherwise.
func OptionalJWTMiddleware() echo.MiddlewareFunc {
	config := jwtConfig()
	config.ContinueOnIgnoredError = true
	config.ErrorHandler = func(c echo.Context, err error) error {
		return nil
	}
	return echojwt.WithConfig(config)
}

// Identity returns the authenticated user of the request.
func Identity(c echo.Context) (*user.Identity, bool) {
	return user.IdentityFromContext(c.Request().Context())
}
