package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionFindProject(t *testing.T) {
	mission := Mission{
		Projects: []Project{
			{ID: "poco", Title: "Poço"},
			{ID: "horta", Title: "Horta"},
		},
	}

	found := mission.FindProject("horta")
	require.NotNil(t, found)
	assert.Equal(t, "Horta", found.Title)

	assert.Nil(t, mission.FindProject("fantasma"))
	assert.Nil(t, mission.FindProject(""))
}

func TestMissionFindUser(t *testing.T) {
	mission := Mission{
		Users: []MissionUser{
			{Email: "ana@m.org", Name: "Ana", Role: "lider"},
		},
	}

	found := mission.FindUser("ana@m.org")
	require.NotNil(t, found)
	assert.Equal(t, "lider", found.Role)

	assert.Nil(t, mission.FindUser("ninguem@m.org"))
}

func TestMissionSummary(t *testing.T) {
	mission := Mission{
		Slug:        "vila-alegre",
		Name:        "Vila Alegre",
		Location:    "Interior do Ceará",
		Description: "Missão de apoio comunitário",
		Status:      "em_andamento",
		Progress:    42,
		Projects:    []Project{{ID: "poco"}},
	}

	summary := mission.Summary()
	assert.Equal(t, "vila-alegre", summary.Slug)
	assert.Equal(t, "em_andamento", summary.Status)
	assert.Equal(t, 42, summary.Progress)
}
