package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/domain/model/auth"
	"fulfillment/internal/core/domain/model/kernel"
)

// Identity headers set by the API gateway after authentication.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const actorContextKey = "actor"

// ActorMiddleware resolves the calling party from the identity headers.
// Requests without a valid identity are rejected with 401 before reaching
// any handler.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Request().Header.Get(HeaderUserID)
			rawRole := c.Request().Header.Get(HeaderUserRole)
			if rawID == "" || rawRole == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing identity headers",
				})
			}

			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid user id",
				})
			}

			role, err := auth.ParseRole(rawRole)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid user role",
				})
			}

			actor, err := auth.NewActor(id, role)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid identity",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (auth.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(auth.Actor)
	return actor, ok
}
