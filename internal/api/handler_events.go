package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-bot-backend/internal/attendance"
)

const maxLookAheadDays = 90

// GetEvents handles GET /api/events. It lists the upcoming attendance
// events on the team calendar, classified into their structured form.
func (h *Handler) GetEvents(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLookAheadDays {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
		days = n
	}

	now := time.Now().In(h.loc)
	raw, err := h.cal.List(c.Request.Context(), now, now.AddDate(0, 0, days))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	events := make([]attendance.Event, 0)
	for _, r := range raw {
		if ev, ok := attendance.Classify(r); ok {
			events = append(events, ev)
		}
	}

	c.JSON(http.StatusOK, events)
}
