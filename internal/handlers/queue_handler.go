package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/config"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/internal/services"
	"github.com/jukevox/backend/pkg/validation"
)

type QueueHandler struct {
	queueService *services.QueueService
	cfg          *config.Config
}

func NewQueueHandler(queueService *services.QueueService, cfg *config.Config) *QueueHandler {
	return &QueueHandler{queueService: queueService, cfg: cfg}
}

// ListQueue returns the session's full queue, history included. TV displays
// and patron apps poll this every few seconds.
func (h *QueueHandler) ListQueue(c *gin.Context) {
	entries, err := h.queueService.ListQueue(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddRequest queues one patron request. The track snapshot the patron picked
// travels in the body and is stored as-is.
func (h *QueueHandler) AddRequest(c *gin.Context) {
	var req struct {
		TrackID     string       `json:"track_id" binding:"required"`
		Track       models.Track `json:"track" binding:"required"`
		RequesterID string       `json:"requester_id" binding:"required"`
		Dedication  string       `json:"dedication"`
		TipAmount   float64      `json:"tip_amount"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TipAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tip_amount must not be negative"})
		return
	}

	result, err := h.queueService.AddRequest(c.Request.Context(), c.Param("sessionId"), services.AddRequestInput{
		TrackID:     req.TrackID,
		Track:       req.Track,
		RequesterID: req.RequesterID,
		Dedication:  validation.SanitizeDedication(req.Dedication, h.cfg.DedicationMaxLength),
		TipAmount:   req.TipAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
