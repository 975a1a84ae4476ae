package models

// Project e uma frente de trabalho da missao, com orcamento e tarefas proprias.
// ID e derivado do titulo quando nao vem preenchido do banco (slugify).
// Progress, TasksDone e TasksTotal sao derivados das tarefas na normalizacao.
type Project struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	MeetingLink string  `json:"meeting_link"`
	Budget      float64 `json:"budget"`
	ClosedAt    string  `json:"closed_at"`
	Tasks       []Task  `json:"tasks"`

	Progress   int `json:"progress"`
	TasksDone  int `json:"tasks_done"`
	TasksTotal int `json:"tasks_total"`
}

// Task e uma tarefa de projeto. Status e texto livre; "done" conta como
// concluida. Weight pondera o percentual de conclusao (1 quando ausente).
type Task struct {
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Assignee string  `json:"assignee"`
	Weight   float64 `json:"weight"`
}
