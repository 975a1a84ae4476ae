package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore aceita qualquer escrita e guarda o ultimo lancamento recebido
type stubStore struct {
	mission   *models.Mission
	lastEntry *models.FinanceEntry
}

func (s *stubStore) GetBySlug(ctx context.Context, slug string) (*models.Mission, error) {
	return s.mission, nil
}

func (s *stubStore) List(ctx context.Context) ([]models.Mission, error) {
	return nil, nil
}

func (s *stubStore) UpdateMeetingLink(ctx context.Context, slug, link string) (bool, error) {
	return true, nil
}

func (s *stubStore) UpdateProjectMeetingLink(ctx context.Context, slug, projectID, link string) (bool, error) {
	return true, nil
}

func (s *stubStore) UpdateProjectBudget(ctx context.Context, slug, projectID string, budget float64) (bool, error) {
	return true, nil
}

func (s *stubStore) AddFinanceEntry(ctx context.Context, slug string, entry *models.FinanceEntry) (bool, error) {
	s.lastEntry = entry
	return true, nil
}

func (s *stubStore) AddFinanceReport(ctx context.Context, slug string, report *models.FinanceReport) (bool, error) {
	return true, nil
}

// noopCache nunca acerta e aceita qualquer escrita
type noopCache struct{ invalidated []string }

func (c *noopCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *noopCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *noopCache) InvalidateMission(ctx context.Context, slug string) error {
	c.invalidated = append(c.invalidated, slug)
	return nil
}

func financeTestRouter(mission *models.Mission) (*gin.Engine, *stubStore, *noopCache) {
	gin.SetMode(gin.TestMode)

	store := &stubStore{mission: mission}
	fakeCache := &noopCache{}
	missionService := services.NewMissionService(store, fakeCache, time.Minute, time.Minute)
	handler := NewFinanceHandler(missionService, nil)

	router := gin.New()
	router.POST("/financeiro/lancamentos", func(c *gin.Context) {
		c.Set("mission", mission)
		c.Set("user_email", "maria@exemplo.org")
		handler.AddEntry(c)
	})
	return router, store, fakeCache
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddEntryHTTP(t *testing.T) {
	mission := &models.Mission{
		Slug: "vila-alegre",
		Name: "Vila Alegre",
		Projects: []models.Project{
			{ID: "poco", Title: "Poço", Budget: 1000},
			{ID: "sem-verba", Title: "Sem Verba", Budget: 0},
		},
	}

	t.Run("lancamento valido retorna 201", func(t *testing.T) {
		router, store, fakeCache := financeTestRouter(mission)

		w := postJSON(t, router, "/financeiro/lancamentos", map[string]string{
			"type":        "entrada",
			"amount":      "1.500,00",
			"date":        "2026-08-30",
			"description": "Doação mensal",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, store.lastEntry)
		assert.InDelta(t, 1500.0, store.lastEntry.Amount, 0.0001)
		assert.Equal(t, "maria@exemplo.org", store.lastEntry.CreatedBy)
		assert.Contains(t, fakeCache.invalidated, "vila-alegre")
	})

	t.Run("tipo invalido retorna a mensagem do formulario", func(t *testing.T) {
		router, store, _ := financeTestRouter(mission)

		w := postJSON(t, router, "/financeiro/lancamentos", map[string]string{
			"type":        "transferencia",
			"amount":      "10,00",
			"date":        "2026-08-30",
			"description": "x",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Tipo invalido.", body["message"])
		assert.Nil(t, store.lastEntry)
	})

	t.Run("projeto inexistente e rejeitado", func(t *testing.T) {
		router, store, _ := financeTestRouter(mission)

		w := postJSON(t, router, "/financeiro/lancamentos", map[string]string{
			"type":        "saida",
			"amount":      "10,00",
			"date":        "2026-08-30",
			"description": "compra",
			"project_id":  "fantasma",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Projeto invalido para lancamento.", body["message"])
		assert.Nil(t, store.lastEntry)
	})

	t.Run("projeto sem orcamento e rejeitado", func(t *testing.T) {
		router, _, _ := financeTestRouter(mission)

		w := postJSON(t, router, "/financeiro/lancamentos", map[string]string{
			"type":        "saida",
			"amount":      "10,00",
			"date":        "2026-08-30",
			"description": "compra",
			"project_id":  "sem-verba",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("projeto com orcamento e aceito", func(t *testing.T) {
		router, store, _ := financeTestRouter(mission)

		w := postJSON(t, router, "/financeiro/lancamentos", map[string]string{
			"type":        "saida",
			"amount":      "300,00",
			"date":        "2026-08-30",
			"description": "material do poço",
			"project_id":  "poco",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, store.lastEntry)
		assert.Equal(t, "poco", store.lastEntry.ProjectID)
	})
}
