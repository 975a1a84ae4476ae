package repository

import (
	"context"
	"testing"
	"time"

	"github.com/missoes-dashboard-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maintenanceNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := maintenanceNow.AddDate(0, 0, -n)
	return &t
}

func projectKeys(projects []maintainedProject) []string {
	keys := make([]string, 0, len(projects))
	for _, p := range projects {
		keys = append(keys, p.ProjectKey)
	}
	return keys
}

func TestPlanMaintenanceCarimbo(t *testing.T) {
	t.Run("status derivado de tarefas concluidas recebe closed_at", func(t *testing.T) {
		// sem status armazenado: o derivado das tarefas decide
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "poco",
			Status:     "",
			Tasks:      []models.Task{{Status: "done"}, {Status: "done"}},
		}}

		stamp, purge := planMaintenance(projects, maintenanceNow)
		assert.Equal(t, []string{"poco"}, projectKeys(stamp))
		assert.Empty(t, purge)
	})

	t.Run("status armazenado passa pela normalizacao", func(t *testing.T) {
		projects := []maintainedProject{
			{MissionID: 1, ProjectKey: "a", Status: "Concluida"},
			{MissionID: 1, ProjectKey: "b", Status: "  CONCLUIDA  "},
		}

		stamp, _ := planMaintenance(projects, maintenanceNow)
		assert.Equal(t, []string{"a", "b"}, projectKeys(stamp))
	})

	t.Run("carimbo e gravado uma unica vez", func(t *testing.T) {
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "poco",
			Status:     "concluida",
			ClosedAt:   daysAgo(10),
		}}

		stamp, purge := planMaintenance(projects, maintenanceNow)
		assert.Empty(t, stamp)
		assert.Empty(t, purge)
	})

	t.Run("projeto em andamento fica intocado", func(t *testing.T) {
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "horta",
			Tasks:      []models.Task{{Status: "done"}, {Status: "todo"}},
		}}

		stamp, purge := planMaintenance(projects, maintenanceNow)
		assert.Empty(t, stamp)
		assert.Empty(t, purge)
	})
}

func TestPlanMaintenanceExpurgo(t *testing.T) {
	t.Run("fechado ha 366 dias expira", func(t *testing.T) {
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "antigo",
			Status:     "concluida",
			ClosedAt:   daysAgo(366),
		}}

		stamp, purge := planMaintenance(projects, maintenanceNow)
		assert.Empty(t, stamp)
		require.Len(t, purge, 1)
		assert.Equal(t, "antigo", purge[0].ProjectKey)
		assert.Equal(t, int64(1), purge[0].MissionID)
	})

	t.Run("fechado ha 364 dias permanece", func(t *testing.T) {
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "recente",
			Status:     "concluida",
			ClosedAt:   daysAgo(364),
		}}

		_, purge := planMaintenance(projects, maintenanceNow)
		assert.Empty(t, purge)
	})

	t.Run("expurgo tambem usa o status derivado", func(t *testing.T) {
		// sem status armazenado, tarefas concluidas, fechado ha mais de um ano
		projects := []maintainedProject{{
			MissionID:  2,
			ProjectKey: "derivado",
			Status:     "",
			ClosedAt:   daysAgo(400),
			Tasks:      []models.Task{{Status: "done"}},
		}}

		_, purge := planMaintenance(projects, maintenanceNow)
		require.Len(t, purge, 1)
		assert.Equal(t, "derivado", purge[0].ProjectKey)
	})

	t.Run("carimbado agora nao expira na mesma passada", func(t *testing.T) {
		projects := []maintainedProject{{
			MissionID:  1,
			ProjectKey: "novo",
			Status:     "concluida",
		}}

		stamp, purge := planMaintenance(projects, maintenanceNow)
		assert.Len(t, stamp, 1)
		assert.Empty(t, purge)
	})
}

func TestMissionRepositorySemPool(t *testing.T) {
	repo := NewMissionRepository(nil)
	ctx := context.Background()

	mission, err := repo.GetBySlug(ctx, "vila-alegre")
	require.NoError(t, err)
	assert.Nil(t, mission)

	missions, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, missions)

	ok, err := repo.UpdateMeetingLink(ctx, "vila-alegre", "https://meet.exemplo.org/x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AddFinanceEntry(ctx, "vila-alegre", &models.FinanceEntry{ID: "e1"})
	require.NoError(t, err)
	assert.False(t, ok)
}
