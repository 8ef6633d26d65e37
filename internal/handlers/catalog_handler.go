package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jukevox/backend/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Search runs a policy-scoped catalog search. An empty query returns the
// browse default; provider narrows the fan-out to one catalog.
func (h *CatalogHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is too long"})
		return
	}

	provider := strings.ToLower(c.DefaultQuery("provider", "all"))
	switch provider {
	case "all", "spotify", "apple":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported provider"})
		return
	}

	tracks, err := h.catalogService.Search(c.Request.Context(), query, provider, c.Query("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tracks)
}
