package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/middleware"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/services"
)

// AdminHandler covers the authenticated venue-side surface: queue
// advancement, content policy, session settings and the printable QR.
type AdminHandler struct {
	queueService   *services.QueueService
	sessionService *services.SessionService
	policyService  *services.PolicyService
	qrService      *services.QRService
	authService    *services.AuthService
}

func NewAdminHandler(queueService *services.QueueService, sessionService *services.SessionService, policyService *services.PolicyService, qrService *services.QRService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		queueService:   queueService,
		sessionService: sessionService,
		policyService:  policyService,
		qrService:      qrService,
		authService:    authService,
	}
}

// SkipTrack advances the queue: the current head is marked played and the
// next queued entry becomes the de-facto now-playing item.
func (h *AdminHandler) SkipTrack(c *gin.Context) {
	queue, err := h.queueService.Advance(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "queue": queue})
}

// GetFilters returns the caller's content policy
func (h *AdminHandler) GetFilters(c *gin.Context) {
	policy, err := h.policyService.GetPolicy(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}

// UpdateFilters replaces the caller's content policy
func (h *AdminHandler) UpdateFilters(c *gin.Context) {
	var req models.Policy
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.policyService.SetPolicy(c.Request.Context(), middleware.UserID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateSessionSettings edits pricing and policy knobs of an owned session
func (h *AdminHandler) UpdateSessionSettings(c *gin.Context) {
	var req struct {
		PricePerRequest        *float64 `json:"price_per_request"`
		MaxTrackLengthSeconds  *int     `json:"max_track_length_seconds"`
		ExplicitContentBlocked *bool    `json:"explicit_content_blocked"`
		AverageWaitSeconds     *int     `json:"average_wait_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.UpdateSettings(c.Request.Context(), c.Param("sessionId"), middleware.UserID(c), services.UpdateSettingsInput{
		PricePerRequest:        req.PricePerRequest,
		MaxTrackLengthSeconds:  req.MaxTrackLengthSeconds,
		ExplicitContentBlocked: req.ExplicitContentBlocked,
		AverageWaitSeconds:     req.AverageWaitSeconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// OpenSession re-opens a closed session
func (h *AdminHandler) OpenSession(c *gin.Context) {
	h.setOpen(c, true)
}

// CloseSession closes a session; the queue stops accepting requests but
// remains readable for the display.
func (h *AdminHandler) CloseSession(c *gin.Context) {
	h.setOpen(c, false)
}

func (h *AdminHandler) setOpen(c *gin.Context, open bool) {
	session, err := h.sessionService.SetOpen(c.Request.Context(), c.Param("sessionId"), middleware.UserID(c), open)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreateDisplayToken mints the long-lived token a venue pastes into a TV
// display for one of its sessions
func (h *AdminHandler) CreateDisplayToken(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if session.OwnerID != "" && session.OwnerID != middleware.UserID(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthorized.Error()})
		return
	}

	token, err := h.authService.IssueDisplayToken(session.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue display token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"display_token": token})
}

// GetSessionQR streams the printable table-tent PDF for a session
func (h *AdminHandler) GetSessionQR(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if session.OwnerID != "" && session.OwnerID != middleware.UserID(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthorized.Error()})
		return
	}

	pdf, err := h.qrService.GenerateSessionQRPDF(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=session-%s-qr.pdf", session.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
