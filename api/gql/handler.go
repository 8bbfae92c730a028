package gql

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "graphql").Logger()

type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves POST bodies and GET ?query= requests. Identity comes from
// the request context, so the route should run behind the optional JWT middleware.
func Handler(schema graphql.Schema) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req Request
		if c.Request().Method == http.MethodGet {
			req.Query = c.QueryParam("query")
			req.OperationName = c.QueryParam("operationName")
			if raw := c.QueryParam("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid variables")
				}
			}
		} else if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
		}
		if req.Query == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query is required")
		}

		result := Execute(c.Request().Context(), schema, req)
		return c.JSON(http.StatusOK, result)
	}
}

func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
	if result.HasErrors() {
		logger.Debug().Interface("errors", result.Errors).Str("operation", req.OperationName).Msg("graphql errors")
	}
	return result
}
