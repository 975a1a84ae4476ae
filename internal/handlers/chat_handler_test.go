package handlers

import (
	"testing"

	"github.com/missoes-dashboard-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterConversation(t *testing.T) {
	messages := []models.ChatMessage{
		{ID: "1", FromEmail: "ana@m.org", ToEmail: "bia@m.org", Text: "oi"},
		{ID: "2", FromEmail: "bia@m.org", ToEmail: "ana@m.org", Text: "oi!"},
		{ID: "3", FromEmail: "ana@m.org", ToEmail: "carla@m.org", Text: "outra conversa"},
		{ID: "4", FromEmail: "carla@m.org", ToEmail: "bia@m.org", Text: "terceiros"},
	}

	t.Run("so as duas direcoes do par", func(t *testing.T) {
		filtered := FilterConversation(messages, "ana@m.org", "bia@m.org")
		assert.Len(t, filtered, 2)
		assert.Equal(t, "1", filtered[0].ID)
		assert.Equal(t, "2", filtered[1].ID)
	})

	t.Run("simetrica entre os participantes", func(t *testing.T) {
		deAna := FilterConversation(messages, "ana@m.org", "bia@m.org")
		deBia := FilterConversation(messages, "bia@m.org", "ana@m.org")
		assert.Equal(t, deAna, deBia)
	})

	t.Run("sem interlocutor a conversa e vazia", func(t *testing.T) {
		assert.Empty(t, FilterConversation(messages, "ana@m.org", ""))
		assert.Empty(t, FilterConversation(messages, "", "bia@m.org"))
	})

	t.Run("par sem mensagens", func(t *testing.T) {
		filtered := FilterConversation(messages, "ana@m.org", "dori@m.org")
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})
}
