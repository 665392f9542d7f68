package middleware

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextClientKey    = "ingestClient"
)

// IngestAuth admits requests carrying a bearer token issued by tokens and
// stores the token's client name in the context.
func IngestAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != authorizationType {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		client, err := tokens.ValidateToken(fields[1])
		if err != nil {
			log.Debug("ingest token rejected", "ip", c.ClientIP(), "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextClientKey, client)
		c.Next()
	}
}

func GetClient(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextClientKey)
	if !exists {
		return "", false
	}
	client, ok := v.(string)
	return client, ok
}
