package progress

import (
	"math"
	"strings"

	"github.com/missoes-dashboard-api/internal/models"
)

// Status canonicos de projeto e missao
const (
	StatusOpen       = "aberta"
	StatusInProgress = "em_andamento"
	StatusPaused     = "pausada"
	StatusDone       = "concluida"
	StatusCanceled   = "cancelada"
)

const taskStatusDone = "done"

// Sinonimos aceitos em status explicitos de projeto. Valores normalizados
// fora da tabela passam adiante sem traducao.
var statusSynonyms = map[string]string{
	"ativo":           StatusInProgress,
	"em_andamento":    StatusInProgress,
	"em_planejamento": StatusOpen,
	"planejamento":    StatusOpen,
	"aberta":          StatusOpen,
	"pausada":         StatusPaused,
	"concluida":       StatusDone,
	"cancelada":       StatusCanceled,
}

func taskWeight(t models.Task) float64 {
	if t.Weight == 0 {
		return 1.0
	}
	return t.Weight
}

func taskStatus(t models.Task) string {
	return strings.ToLower(t.Status)
}

// TasksProgress calcula o percentual ponderado de conclusao de uma lista de
// tarefas, alem das contagens nao ponderadas de feitas e totais.
func TasksProgress(tasks []models.Task) (pct, done, total int) {
	var totalWeight, doneWeight float64
	for _, task := range tasks {
		weight := taskWeight(task)
		totalWeight += weight
		total++
		if taskStatus(task) == taskStatusDone {
			doneWeight += weight
			done++
		}
	}

	if totalWeight <= 0 {
		return 0, done, total
	}
	return int(math.Round(doneWeight / totalWeight * 100)), done, total
}

// ProjectProgress deriva o progresso de um projeto a partir de suas tarefas
func ProjectProgress(p models.Project) (pct, done, total int) {
	if len(p.Tasks) == 0 {
		return 0, 0, 0
	}
	return TasksProgress(p.Tasks)
}

// ProjectStatus resolve o status de um projeto. Status explicito passa pela
// tabela de sinonimos; sem status, deriva do conjunto de status das tarefas.
func ProjectStatus(p models.Project) string {
	if status := strings.TrimSpace(p.Status); status != "" {
		normalized := strings.ReplaceAll(strings.ToLower(status), " ", "_")
		if mapped, ok := statusSynonyms[normalized]; ok {
			return mapped
		}
		return normalized
	}

	if len(p.Tasks) == 0 {
		return StatusOpen
	}

	statuses := make(map[string]struct{}, len(p.Tasks))
	for _, task := range p.Tasks {
		statuses[taskStatus(task)] = struct{}{}
	}

	_, hasDone := statuses[taskStatusDone]
	if hasDone && len(statuses) == 1 {
		return StatusDone
	}
	_, hasDoing := statuses["doing"]
	if hasDone || hasDoing {
		return StatusInProgress
	}
	if _, blocked := statuses["blocked"]; blocked {
		return StatusPaused
	}
	return StatusOpen
}

// MissionProgress e a media aritmetica simples dos progressos dos projetos
func MissionProgress(projects []models.Project) int {
	if len(projects) == 0 {
		return 0
	}
	sum := 0
	for _, p := range projects {
		pct, _, _ := ProjectProgress(p)
		sum += pct
	}
	return int(math.Round(float64(sum) / float64(len(projects))))
}

// MissionStatus agrega os status derivados dos projetos. A ordem das
// verificacoes e uma politica de desempate: concluida > em_andamento >
// pausada > cancelada > aberta.
func MissionStatus(projects []models.Project) string {
	if len(projects) == 0 {
		return StatusOpen
	}

	statuses := make([]string, 0, len(projects))
	for _, p := range projects {
		statuses = append(statuses, ProjectStatus(p))
	}

	allDone := true
	allPaused := true
	anyInProgress := false
	anyCanceled := false
	for _, s := range statuses {
		if s != StatusDone {
			allDone = false
		}
		if s != StatusPaused {
			allPaused = false
		}
		if s == StatusInProgress {
			anyInProgress = true
		}
		if s == StatusCanceled {
			anyCanceled = true
		}
	}

	switch {
	case allDone:
		return StatusDone
	case anyInProgress:
		return StatusInProgress
	case allPaused:
		return StatusPaused
	case anyCanceled:
		return StatusCanceled
	default:
		return StatusOpen
	}
}
