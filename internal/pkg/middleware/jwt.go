package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	jwtpkg "github.com/piresc/dispatch/internal/pkg/jwt"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
	contextKeyActor  = "actor"
)

// JWTAuthMiddleware validates the bearer token and stores the caller on the context
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := jwtpkg.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization), config.Secret)
			switch {
			case errors.Is(err, jwtpkg.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			case errors.Is(err, jwtpkg.ErrBadFormat):
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			case err != nil:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			actor := claims.Actor()
			SetActor(c, actor)

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				txn.AddAttribute("user.id", actor.UserID)
				txn.AddAttribute("user.role", string(actor.Role))
			}

			return next(c)
		}
	}
}

// SetActor stores the caller on the echo context
func SetActor(c echo.Context, actor models.Actor) {
	c.Set(ContextKeyUserID, actor.UserID)
	c.Set(ContextKeyRole, actor.Role)
	c.Set(contextKeyActor, actor)
}

// ActorFrom returns the authenticated caller set by JWTAuthMiddleware
func ActorFrom(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(contextKeyActor).(models.Actor)
	return actor, ok
}

// RequireRole rejects callers whose role is not listed
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "")
			}
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "role "+string(actor.Role)+" may not perform this action")
		}
	}
}
