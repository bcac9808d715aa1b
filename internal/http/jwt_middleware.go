package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rental-hub/internal/service"
)

const authPrincipalKey = "auth_principal"

// JWTAuthMiddleware resuelve el bearer token al id del usuario y lo guarda en el contexto.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		userID, err := jwtSvc.ResolvePrincipal(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrJWTExpired) {
				msg = "token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set(authPrincipalKey, userID)
		c.Next()
	}
}

// GetPrincipal obtiene el id del usuario autenticado desde el contexto.
func GetPrincipal(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.GetString(authPrincipalKey))
	return userID, userID != ""
}

// principal devuelve el id del usuario autenticado o responde 401.
func principal(c *gin.Context) (string, bool) {
	userID, ok := GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return "", false
	}
	return userID, true
}
