package finance

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/missoes-dashboard-api/internal/models"
)

// Formato do carimbo de criacao gravado nos lancamentos
const createdAtLayout = "2006-01-02 15:04:05"

// ParseAmount converte um valor no formato brasileiro ("1.234,56") para
// float64. Ponto e separador de milhar, virgula e separador decimal.
func ParseAmount(raw string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// BuildEntry valida o formulario de lancamento e monta o registro completo.
// Retorna a mensagem do primeiro campo invalido; mensagem vazia significa
// sucesso. Validacao nunca gera erro de programa, so mensagem para o usuario.
func BuildEntry(form models.FinanceEntryForm, createdBy string) (*models.FinanceEntry, string) {
	entryType := strings.ToLower(strings.TrimSpace(form.Type))
	if entryType != models.EntryTypeIn && entryType != models.EntryTypeOut {
		return nil, "Tipo invalido."
	}

	amount, ok := ParseAmount(form.Amount)
	if !ok || amount <= 0 {
		return nil, "Informe um valor valido."
	}

	date := strings.TrimSpace(form.Date)
	if date == "" {
		return nil, "Informe a data."
	}

	description := strings.TrimSpace(form.Description)
	if description == "" {
		return nil, "Descreva o lancamento."
	}

	entry := &models.FinanceEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        entryType,
		Amount:      amount,
		Description: description,
		Category:    strings.TrimSpace(form.Category),
		ReceiptLink: strings.TrimSpace(form.ReceiptLink),
		ProjectID:   strings.TrimSpace(form.ProjectID),
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC().Format(createdAtLayout) + " UTC",
	}
	return entry, ""
}

// Summary totaliza entradas, saidas e saldo de um conjunto de lancamentos
type Summary struct {
	TotalIn  float64 `json:"total_in"`
	TotalOut float64 `json:"total_out"`
	Balance  float64 `json:"balance"`
}

// Summarize soma os lancamentos por tipo. Tipos desconhecidos sao ignorados
// sem erro, registro a registro.
func Summarize(entries []models.FinanceEntry) Summary {
	var s Summary
	for _, entry := range entries {
		switch entry.Type {
		case models.EntryTypeIn:
			s.TotalIn += entry.Amount
		case models.EntryTypeOut:
			s.TotalOut += entry.Amount
		}
	}
	s.Balance = s.TotalIn - s.TotalOut
	return s
}

// ProjectState e o consumo de orcamento de um projeto no painel financeiro
type ProjectState struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Budget    float64 `json:"budget"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Status    string  `json:"status"`
	ClosedAt  string  `json:"closed_at"`
}

// State e a fotografia financeira da missao: caixa central, orcamento total
// comprometido, saldo disponivel e consumo por projeto.
type State struct {
	Central     Summary        `json:"central"`
	TotalBudget float64        `json:"total_budget"`
	Available   float64        `json:"available"`
	Projects    []ProjectState `json:"projects"`
}

// BuildState calcula o painel financeiro. Lancamentos sem projeto formam o
// caixa central; "saida" atribuida a um projeto consome o orcamento dele.
// Available e o saldo central ainda nao comprometido com orcamentos.
func BuildState(entries []models.FinanceEntry, projects []models.Project) State {
	var central []models.FinanceEntry
	for _, entry := range entries {
		if entry.ProjectID == "" {
			central = append(central, entry)
		}
	}
	centralSummary := Summarize(central)

	var totalBudget float64
	states := make(map[string]*ProjectState, len(projects))
	for _, project := range projects {
		if project.ID == "" {
			continue
		}
		totalBudget += project.Budget
		states[project.ID] = &ProjectState{
			ID:       project.ID,
			Title:    project.Title,
			Budget:   project.Budget,
			Status:   project.Status,
			ClosedAt: project.ClosedAt,
		}
	}

	for _, entry := range entries {
		state, ok := states[entry.ProjectID]
		if !ok || entry.Type != models.EntryTypeOut {
			continue
		}
		state.Spent += entry.Amount
	}

	projectStates := make([]ProjectState, 0, len(states))
	for _, state := range states {
		state.Remaining = state.Budget - state.Spent
		projectStates = append(projectStates, *state)
	}
	sort.Slice(projectStates, func(i, j int) bool {
		return projectStates[i].Title < projectStates[j].Title
	})

	return State{
		Central:     centralSummary,
		TotalBudget: totalBudget,
		Available:   centralSummary.Balance - totalBudget,
		Projects:    projectStates,
	}
}

// SortEntries ordena lancamentos do mais recente para o mais antigo pelo par
// (date, created_at) como texto. Datas ISO garantem a ordem correta.
func SortEntries(entries []models.FinanceEntry) []models.FinanceEntry {
	sorted := make([]models.FinanceEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}
