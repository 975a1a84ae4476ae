package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/config"
	"github.com/missoes-dashboard-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/eu", AuthMiddleware(cfg), func(c *gin.Context) {
		email, _ := CurrentUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email, "name": CurrentUserName(c)})
	})
	return router
}

func getWithAuth(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/eu", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "segredo-de-teste", ExpirationHours: 1},
	}
	router := authTestRouter(cfg)

	t.Run("token valido injeta o usuario", func(t *testing.T) {
		token, err := utils.GenerateIdentityToken("maria@exemplo.org", "Maria", cfg)
		require.NoError(t, err)

		w := getWithAuth(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "maria@exemplo.org")
	})

	t.Run("sem header retorna 401", func(t *testing.T) {
		w := getWithAuth(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("formato errado retorna 401", func(t *testing.T) {
		w := getWithAuth(router, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token adulterado retorna 401", func(t *testing.T) {
		token, err := utils.GenerateIdentityToken("maria@exemplo.org", "Maria", cfg)
		require.NoError(t, err)

		w := getWithAuth(router, "Bearer "+token+"x")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
