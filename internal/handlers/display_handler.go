package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/middleware"
	"github.com/jukevox/backend/internal/services"
)

// DisplayHandler serves the TV display surface. A display authenticates with
// a long-lived token bound to one session and polls a single endpoint for
// everything it renders.
type DisplayHandler struct {
	sessionService *services.SessionService
	queueService   *services.QueueService
}

func NewDisplayHandler(sessionService *services.SessionService, queueService *services.QueueService) *DisplayHandler {
	return &DisplayHandler{sessionService: sessionService, queueService: queueService}
}

// GetState returns the session and its full queue for the session the
// display token is bound to.
func (h *DisplayHandler) GetState(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	queue, err := h.queueService.ListQueue(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "queue": queue})
}
