package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/middleware"
	"github.com/jukevox/backend/internal/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession opens a new venue session. A bearer identity, when present,
// is attached as the session owner; anonymous demo sessions are allowed.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		VenueName              string   `json:"venue_name" binding:"required"`
		PricePerRequest        *float64 `json:"price_per_request"`
		MaxTrackLengthSeconds  *int     `json:"max_track_length_seconds"`
		ExplicitContentBlocked *bool    `json:"explicit_content_blocked"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), services.CreateSessionInput{
		VenueName:              req.VenueName,
		PricePerRequest:        req.PricePerRequest,
		MaxTrackLengthSeconds:  req.MaxTrackLengthSeconds,
		ExplicitContentBlocked: req.ExplicitContentBlocked,
		OwnerID:                middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session":     session,
		"qr_code_url": h.sessionService.PatronURL(session.ID),
	})
}

// GetSession returns one session record
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListActiveSessions returns the open sessions for the venue picker
func (h *SessionHandler) ListActiveSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListActiveSessions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
