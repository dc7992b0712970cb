package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ewastemap/internal/config"
	"ewastemap/internal/middleware"
	"ewastemap/internal/model"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index renders the map page with geocoder configuration and the
// current user's identity.
func (h *PageHandler) Index(c *gin.Context) {
	role := c.GetString(middleware.ContextRole)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Geocoder":       h.cfg.Geocoder,
		"GeocoderAPIKey": h.cfg.GeocoderAPIKey,
		"Username":       c.GetString(middleware.ContextUsername),
		"Role":           role,
		"IsAdmin":        role == model.RoleAdmin,
	})
}
