package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/middleware"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/permissions"
	"github.com/missoes-dashboard-api/internal/services"
)

// MissionHandler serve os view-models das paginas publicas e do painel
type MissionHandler struct {
	missionService *services.MissionService
}

func NewMissionHandler(missionService *services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// Index resolve a missao pelo subdominio do host; sem subdominio, devolve a
// listagem para o chamador renderizar o indice.
func (h *MissionHandler) Index(c *gin.Context) {
	mission, err := h.missionService.Resolve(c.Request.Context(), "", c.Request.Host)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve mission"})
		return
	}

	if mission != nil {
		c.JSON(http.StatusOK, gin.H{"mission": mission})
		return
	}

	missions, err := h.missionService.ListMissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list missions"})
		return
	}

	summaries := make([]models.MissionSummary, 0, len(missions))
	for i := range missions {
		summaries = append(summaries, missions[i].Summary())
	}
	c.JSON(http.StatusOK, gin.H{"missions": summaries})
}

// List devolve o resumo de todas as missoes
func (h *MissionHandler) List(c *gin.Context) {
	missions, err := h.missionService.ListMissions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list missions"})
		return
	}

	summaries := make([]models.MissionSummary, 0, len(missions))
	for i := range missions {
		summaries = append(summaries, missions[i].Summary())
	}
	c.JSON(http.StatusOK, gin.H{"missions": summaries})
}

// Get devolve o documento completo da missao resolvida
func (h *MissionHandler) Get(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}
	c.JSON(http.StatusOK, mission)
}

// About devolve a secao institucional
func (h *MissionHandler) About(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": mission.Slug, "about": mission.About})
}

// Projects devolve os projetos normalizados
func (h *MissionHandler) Projects(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": mission.Slug, "projects": mission.Projects})
}

// ProjectDetail devolve um projeto e suas tarefas
func (h *MissionHandler) ProjectDetail(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	project := mission.FindProject(c.Param("project_id"))
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Help devolve as formas de ajudar
func (h *MissionHandler) Help(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": mission.Slug, "help": mission.Help})
}

// Contact devolve os canais de contato
func (h *MissionHandler) Contact(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": mission.Slug, "contact": mission.Contact})
}

// Dashboard devolve os membros da missao com os rotulos de papel
func (h *MissionHandler) Dashboard(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	type memberView struct {
		models.MissionUser
		RoleLabel string `json:"role_label"`
	}

	members := make([]memberView, 0, len(mission.Users))
	for _, user := range mission.Users {
		members = append(members, memberView{
			MissionUser: user,
			RoleLabel:   permissions.RoleLabels[permissions.Role(user.Role)],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"mission":  mission.Summary(),
		"members":  members,
		"progress": mission.Progress,
		"status":   mission.Status,
	})
}

// UpdateMeetingLink troca o link de reuniao da missao
func (h *MissionHandler) UpdateMeetingLink(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	var req models.UpdateMeetingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.missionService.UpdateMeetingLink(c.Request.Context(), mission.Slug, req.MeetingLink)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meeting link"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// UpdateProjectMeetingLink troca o link de reuniao de um projeto
func (h *MissionHandler) UpdateProjectMeetingLink(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	var req models.UpdateMeetingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.missionService.UpdateProjectMeetingLink(
		c.Request.Context(), mission.Slug, c.Param("project_id"), req.MeetingLink)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project meeting link"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
