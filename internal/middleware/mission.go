package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/permissions"
)

// MissionResolver resolve o slug ou o subdominio do host para o documento
// normalizado da missao
type MissionResolver interface {
	Resolve(ctx context.Context, slug, host string) (*models.Mission, error)
}

// MissionMiddleware resolve a missao do request e injeta o documento no
// contexto. Slug explicito na rota vence; sem slug, o subdominio do Host
// decide. Missao inexistente responde 404.
func MissionMiddleware(resolver MissionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		mission, err := resolver.Resolve(ctx, slug, c.Request.Host)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve mission"})
			c.Abort()
			return
		}
		if mission == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "mission not found", "slug": slug})
			c.Abort()
			return
		}

		c.Set("mission", mission)
		c.Next()
	}
}

// CurrentMission devolve a missao resolvida do contexto
func CurrentMission(c *gin.Context) (*models.Mission, bool) {
	value, exists := c.Get("mission")
	if !exists {
		return nil, false
	}
	mission, ok := value.(*models.Mission)
	return mission, ok
}

// RequireMember exige que o usuario autenticado seja membro da missao
// resolvida e injeta o papel dele no contexto.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		mission, ok := CurrentMission(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
			c.Abort()
			return
		}

		email, ok := CurrentUserEmail(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		member := mission.FindUser(email)
		if member == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied to this mission"})
			c.Abort()
			return
		}

		c.Set("member_role", permissions.Role(member.Role))
		c.Next()
	}
}

// CurrentMemberRole devolve o papel do membro injetado por RequireMember
func CurrentMemberRole(c *gin.Context) (permissions.Role, bool) {
	value, exists := c.Get("member_role")
	if !exists {
		return "", false
	}
	role, ok := value.(permissions.Role)
	return role, ok
}

// RequireCapability exige que o papel do membro possua a capacidade.
// Roda depois de RequireMember.
func RequireCapability(cap permissions.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("member_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "membership required"})
			c.Abort()
			return
		}

		role, ok := value.(permissions.Role)
		if !ok || !permissions.HasCapability(role, cap) {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission '" + string(cap) + "' required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
