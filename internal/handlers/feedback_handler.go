package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/middleware"
	"github.com/missoes-dashboard-api/internal/models"
	"github.com/missoes-dashboard-api/internal/repository"
)

// FeedbackHandler recebe retornos de visitantes e membros do portal
type FeedbackHandler struct {
	feedbackRepo *repository.FeedbackRepository
}

func NewFeedbackHandler(feedbackRepo *repository.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{feedbackRepo: feedbackRepo}
}

// Create grava um feedback. Usuario autenticado preenche email e nome
// quando o formulario nao traz.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Descreva o feedback antes de enviar."})
		return
	}

	if req.Type == "" {
		req.Type = "sugestao"
	}
	if req.Email == "" {
		req.Email, _ = middleware.CurrentUserEmail(c)
	}
	if req.Name == "" {
		req.Name = middleware.CurrentUserName(c)
	}
	if req.Page == "" {
		req.Page = c.Request.Referer()
	}

	item, err := h.feedbackRepo.Save(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}
	c.JSON(http.StatusCreated, item)
}
