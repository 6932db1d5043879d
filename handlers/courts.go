package handlers

import (
	"context"
	"net/http"
	"strings"

	"courtbook/models"
	"courtbook/services/catalog"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
)

// CourtCatalog is the catalog surface the court pages read.
type CourtCatalog interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
	Court(ctx context.Context, courtID string) (*models.Court, error)
}

// CourtHandler serves the public court catalog.
type CourtHandler struct {
	Catalog CourtCatalog
}

func NewCourtHandler(c CourtCatalog) *CourtHandler {
	return &CourtHandler{Catalog: c}
}

// ListCourtsHandler returns the court list, filtered by ?q= (name) and ?type=.
func (h *CourtHandler) ListCourtsHandler(c *gin.Context) {
	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	courtType := strings.TrimSpace(c.Query("type"))

	var courts []models.Court
	switch {
	case q != "" && courtType != "":
		courts = cat.Filter(q, courtType)
	case q != "":
		courts = cat.FilterByName(q)
	case courtType != "":
		courts = cat.FilterByType(courtType)
	default:
		courts = cat.ListCourts()
	}
	if courts == nil {
		courts = []models.Court{}
	}

	c.JSON(http.StatusOK, gin.H{"courts": courts, "count": len(courts)})
}

// GetCourtHandler returns one court for the booking page.
func (h *CourtHandler) GetCourtHandler(c *gin.Context) {
	court, err := h.Catalog.Court(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, court)
}
