package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/finance"
	"github.com/missoes-dashboard-api/internal/middleware"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/services"
)

// FinanceHandler serve o painel financeiro e recebe lancamentos
type FinanceHandler struct {
	missionService *services.MissionService
	receiptService *services.ReceiptService
}

func NewFinanceHandler(missionService *services.MissionService, receiptService *services.ReceiptService) *FinanceHandler {
	return &FinanceHandler{
		missionService: missionService,
		receiptService: receiptService,
	}
}

// View devolve o painel financeiro: lancamentos ordenados, fotografia do
// caixa e totais por periodo.
func (h *FinanceHandler) View(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	entries := finance.SortEntries(mission.FinanceEntries)
	state := finance.BuildState(mission.FinanceEntries, mission.Projects)
	periods := finance.BuildPeriods(mission.FinanceEntries, time.Now().UTC())

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"state":   state,
		"periods": periods,
		"reports": mission.FinanceReports,
	})
}

// AddEntry valida o formulario e insere o lancamento. Erros de validacao
// voltam como mensagem unica para o formulario, nunca como erro de servidor.
func (h *FinanceHandler) AddEntry(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	var form models.FinanceEntryForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, _ := middleware.CurrentUserEmail(c)
	entry, message := finance.BuildEntry(form, email)
	if message != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}

	// Lancamento atribuido a projeto exige projeto existente com orcamento
	if entry.ProjectID != "" {
		project := mission.FindProject(entry.ProjectID)
		if project == nil || project.Budget <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Projeto invalido para lancamento."})
			return
		}
	}

	added, err := h.missionService.AddFinanceEntry(c.Request.Context(), mission.Slug, entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add finance entry"})
		return
	}
	if !added {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateBudget define o orcamento de um projeto
func (h *FinanceHandler) UpdateBudget(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Budget < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Informe um orcamento valido."})
		return
	}

	updated, err := h.missionService.UpdateProjectBudget(
		c.Request.Context(), mission.Slug, c.Param("project_id"), req.Budget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update budget"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// AddReport grava um retrato do painel financeiro como relatorio
func (h *FinanceHandler) AddReport(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	state := finance.BuildState(mission.FinanceEntries, mission.Projects)
	periods := finance.BuildPeriods(mission.FinanceEntries, time.Now().UTC())

	periodsJSON, err := json.Marshal(periods)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	email, _ := middleware.CurrentUserEmail(c)
	report := &models.FinanceReport{
		Periods:   periodsJSON,
		State:     stateJSON,
		CreatedBy: email,
		CreatedAt: time.Now().UTC().Format("2006-01-02 15:04:05") + " UTC",
	}

	added, err := h.missionService.AddFinanceReport(c.Request.Context(), mission.Slug, report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add finance report"})
		return
	}
	if !added {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ExportCSV baixa os lancamentos ordenados em CSV
func (h *FinanceHandler) ExportCSV(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	entries := finance.SortEntries(mission.FinanceEntries)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s-financeiro.csv", mission.Slug))

	if err := finance.WriteCSV(c.Writer, entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export entries"})
		return
	}
}

// UploadReceipt recebe um comprovante e devolve o link para receipt_link
func (h *FinanceHandler) UploadReceipt(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file required"})
		return
	}

	link, err := h.receiptService.UploadReceipt(c.Request.Context(), mission.Slug, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"receipt_link": link})
}
