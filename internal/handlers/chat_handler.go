package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/missoes-dashboard-api/internal/middleware"
	"github.com/missoes-dashboard-api/internal/models"
)

// ChatHandler serve as conversas do chat interno da missao
type ChatHandler struct{}

func NewChatHandler() *ChatHandler {
	return &ChatHandler{}
}

// Conversation devolve as mensagens trocadas entre o usuario autenticado e
// o membro indicado em ?with=. Sem interlocutor selecionado a conversa e
// vazia; mensagens de terceiros nunca aparecem.
func (h *ChatHandler) Conversation(c *gin.Context) {
	mission, ok := middleware.CurrentMission(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission not found in context"})
		return
	}

	email, _ := middleware.CurrentUserEmail(c)
	selectedEmail := c.Query("with")

	var selected *models.MissionUser
	if selectedEmail != "" {
		selected = mission.FindUser(selectedEmail)
	}

	messages := FilterConversation(mission.ChatMessages, email, selectedEmail)

	c.JSON(http.StatusOK, gin.H{
		"users":         mission.Users,
		"selected_user": selected,
		"messages":      messages,
	})
}

// FilterConversation mantem so as mensagens entre os dois participantes,
// nas duas direcoes. Sem interlocutor, nada e exibido.
func FilterConversation(messages []models.ChatMessage, userEmail, selectedEmail string) []models.ChatMessage {
	filtered := []models.ChatMessage{}
	if userEmail == "" || selectedEmail == "" {
		return filtered
	}

	for _, msg := range messages {
		fromUser := msg.FromEmail == userEmail && msg.ToEmail == selectedEmail
		toUser := msg.FromEmail == selectedEmail && msg.ToEmail == userEmail
		if fromUser || toUser {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}
