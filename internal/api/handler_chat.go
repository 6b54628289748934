package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// chatEvent is the inbound webhook payload from the chat platform.
type chatEvent struct {
	Type string `json:"type"`
	User struct {
		DisplayName string `json:"displayName"`
		Type        string `json:"type"`
	} `json:"user"`
	Message struct {
		Text         string `json:"text"`
		ArgumentText string `json:"argumentText"`
		Annotations  []struct {
			Type string `json:"type"`
		} `json:"annotations"`
	} `json:"message"`
}

// mentioned reports whether the bot was @-mentioned in the message.
func (e *chatEvent) mentioned() bool {
	for _, a := range e.Message.Annotations {
		if a.Type == "USER_MENTION" {
			return true
		}
	}
	return false
}

// PostChatEvent handles POST /api/chat/events. Messages from bots and
// messages that do not mention this bot get no reply.
func (h *Handler) PostChatEvent(c *gin.Context) {
	var event chatEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if event.User.Type == "BOT" || !event.mentioned() {
		c.Status(http.StatusNoContent)
		return
	}

	// ArgumentText is the message with the leading mention already removed
	// by the platform; fall back to the raw text.
	text := event.Message.ArgumentText
	if text == "" {
		text = event.Message.Text
	}

	reply := h.bot.HandleMessage(c.Request.Context(), event.User.DisplayName, text)
	c.JSON(http.StatusOK, gin.H{"text": reply})
}
