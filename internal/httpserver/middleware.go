package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
)

const (
	headerAnonymousID    = "X-Anonymous-Id"
	headerIdempotencyKey = "Idempotency-Key"

	actorKey = "actor"
)

// actorMiddleware resolves the bearer token into an actor. Missing or
// invalid tokens degrade to a guest; handlers that need an account use
// requireAuth on top of this.
func actorMiddleware(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := domain.Guest()
		if token := bearerToken(c); token != "" {
			actor = auth.ResolveActor(c.Request.Context(), token)
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Guest()
}

func anonymousID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(headerAnonymousID))
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
