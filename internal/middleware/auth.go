package middleware

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/hotel-booking-service/internal/policy"
	"github.com/Eursukkul/hotel-booking-service/pkg/jwtutil"
	"github.com/Eursukkul/hotel-booking-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorKey = "actor"

// TokenValidator is satisfied by *jwtutil.Manager.
type TokenValidator interface {
	Validate(tokenString, expectedType string) (*jwtutil.UserClaims, error)
}

// Authenticate resolves the Bearer access token into a policy.Actor.
// Requests without an Authorization header continue anonymously; a present
// but invalid token is rejected with 401.
func Authenticate(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format, expected Bearer token")
			}

			claims, err := tokens.Validate(strings.TrimSpace(parts[1]), jwtutil.TokenAccess)
			if err != nil {
				logger.FromContext(c, nil).Warn("rejected access token", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "given token not valid for any token type")
			}

			c.Set(actorKey, &policy.Actor{UserID: claims.UserID, Username: claims.Username})
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated actor, or nil for anonymous requests.
func ActorFrom(c echo.Context) *policy.Actor {
	actor, _ := c.Get(actorKey).(*policy.Actor)
	return actor
}

// WithActor stores actor on the context.
func WithActor(c echo.Context, actor *policy.Actor) {
	c.Set(actorKey, actor)
}
