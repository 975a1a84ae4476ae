package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/config"
	"github.com/missoes-dashboard-api/internal/utils"
)

// AuthMiddleware valida o token de identidade emitido pelo servico de login
// (Google OAuth) e injeta email e nome do usuario no contexto.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateIdentityToken(parts[1], cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)

		c.Next()
	}
}

// CurrentUserEmail devolve o email autenticado do contexto, se houver
func CurrentUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	value, ok := email.(string)
	return value, ok && value != ""
}

// CurrentUserName devolve o nome exibivel do usuario autenticado
func CurrentUserName(c *gin.Context) string {
	name, exists := c.Get("user_name")
	if !exists {
		return ""
	}
	value, _ := name.(string)
	return value
}
