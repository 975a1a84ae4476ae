package progress

import (
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/utils"
)

// NormalizeProject preenche os campos derivados de um projeto: id (slug do
// titulo quando ausente), status canonico e percentual de conclusao.
// Idempotente: normalizar um projeto ja normalizado nao muda nada.
func NormalizeProject(p models.Project) models.Project {
	if p.ID == "" && p.Title != "" {
		p.ID = utils.Slugify(p.Title)
	}

	p.Status = ProjectStatus(p)
	p.Progress, p.TasksDone, p.TasksTotal = ProjectProgress(p)
	return p
}

// NormalizeMission normaliza todos os projetos e deriva status e progresso
// da missao. Somente documentos normalizados podem ser escritos no cache.
func NormalizeMission(m models.Mission) models.Mission {
	projects := make([]models.Project, 0, len(m.Projects))
	for _, p := range m.Projects {
		projects = append(projects, NormalizeProject(p))
	}

	m.Projects = projects
	m.Status = MissionStatus(projects)
	m.Progress = MissionProgress(projects)
	return m
}
