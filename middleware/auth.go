package middleware

import (
	"context"
	"strings"

	"houses-api/apperr"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/usecases"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

type AuthMiddleware struct {
	log  *logger.Logger
	auth Authenticator
}

func NewAuthMiddleware(log *logger.Logger, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "auth"), auth: auth}
}

// Protect rejects requests without a valid bearer token and stores the actor
// on the context.
func (am *AuthMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := am.auth.Authenticate(c.Request.Context(), extractToken(c))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(actorKey, usecases.ActorFromUser(user))
		c.Next()
	}
}

// Authorize admits only actors holding one of roles. It must run after Protect.
func (am *AuthMiddleware) Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abort(c, apperr.Unauthorized("Not authorized to access this route"))
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		am.log.Warn("role refused", "user_id", actor.ID, "role", actor.Role, "path", c.FullPath())
		abort(c, apperr.Forbidden(actor.ID, "", "User role %s is not authorized to access this route", actor.Role))
	}
}

// ActorFrom returns the actor stored by Protect.
func ActorFrom(c *gin.Context) (usecases.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return usecases.Actor{}, false
	}
	actor, ok := v.(usecases.Actor)
	return actor, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"success": false, "error": apperr.Message(err)})
}

