package api

import (
	"time"

	"attendance-bot-backend/internal/bot"
	"attendance-bot-backend/internal/calendar"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	bot *bot.Service
	cal calendar.Store
	loc *time.Location
}

// NewHandler creates a new API handler.
func NewHandler(b *bot.Service, cal calendar.Store, loc *time.Location) *Handler {
	return &Handler{bot: b, cal: cal, loc: loc}
}
