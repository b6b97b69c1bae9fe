package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/tokenstore"
)

const (
	ContextProviderID = "providerID"
	ContextTokenID    = "tokenID"
	ContextTokenExp   = "tokenExp"
)

func AuthMiddleware(cfg *config.Config, revoked tokenstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		providerID, ok1 := claims["sub"].(string)
		jti, ok2 := claims["jti"].(string)
		if !ok1 || !ok2 || providerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), jti)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "token_store_unavailable"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_revoked"})
				return
			}
		}

		var exp time.Time
		if e, err := claims.GetExpirationTime(); err == nil && e != nil {
			exp = e.Time
		}

		c.Set(ContextProviderID, providerID)
		c.Set(ContextTokenID, jti)
		c.Set(ContextTokenExp, exp)

		c.Next()
	}
}
