package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ewastemap/internal/middleware"
	"ewastemap/internal/model"
	"ewastemap/internal/service"
)

// MarkerHandler handles marker-related requests
type MarkerHandler struct {
	markerService *service.MarkerService
	auditService  *service.AuditService
}

// NewMarkerHandler creates a new marker handler
func NewMarkerHandler(markerService *service.MarkerService, auditService *service.AuditService) *MarkerHandler {
	return &MarkerHandler{markerService: markerService, auditService: auditService}
}

func (h *MarkerHandler) recordOperation(c *gin.Context, action string, markerID uint) {
	h.auditService.RecordOperation(c.Request.Context(), &model.OperationLog{
		UserID:   c.GetUint(middleware.ContextUserID),
		Username: c.GetString(middleware.ContextUsername),
		Action:   action,
		MarkerID: markerID,
		IP:       c.ClientIP(),
	})
}

// List returns all e-waste markers
// @Summary List markers
// @Description Get all e-waste disposal markers in insertion order
// @Tags Markers
// @Produce json
// @Success 200 {array} model.Marker
// @Failure 401 {object} map[string]string
// @Router /api/markers [get]
func (h *MarkerHandler) List(c *gin.Context) {
	markers, err := h.markerService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, markers)
}

// Create creates a new e-waste marker
// @Summary Create marker
// @Description Create a new e-waste disposal marker (admin only)
// @Tags Markers
// @Accept json
// @Produce json
// @Param marker body map[string]interface{} true "Marker data"
// @Success 201 {object} model.Marker
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/markers [post]
func (h *MarkerHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	marker, err := h.markerService.Create(c.Request.Context(), payload)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	h.recordOperation(c, "create", marker.ID)
	c.JSON(http.StatusCreated, marker)
}

// Delete deletes a marker by ID
// @Summary Delete marker
// @Description Delete an e-waste marker (admin only)
// @Tags Markers
// @Produce json
// @Param id path int true "Marker ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/markers/{id} [delete]
func (h *MarkerHandler) Delete(c *gin.Context) {
	id, ok := h.markerID(c)
	if !ok {
		return
	}

	if err := h.markerService.Delete(c.Request.Context(), id); err != nil {
		h.markerError(c, err)
		return
	}

	h.recordOperation(c, "delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "Marker deleted successfully"})
}

// Shutdown marks a disposal centre as shut down
// @Summary Shut down marker
// @Description Mark a disposal centre as shut down (admin only)
// @Tags Markers
// @Produce json
// @Param id path int true "Marker ID"
// @Success 200 {object} model.Marker
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/markers/{id}/shutdown [put]
func (h *MarkerHandler) Shutdown(c *gin.Context) {
	id, ok := h.markerID(c)
	if !ok {
		return
	}

	marker, err := h.markerService.Shutdown(c.Request.Context(), id)
	if err != nil {
		h.markerError(c, err)
		return
	}

	h.recordOperation(c, "shutdown", id)
	c.JSON(http.StatusOK, marker)
}

// Reactivate marks a disposal centre as operational again
// @Summary Reactivate marker
// @Description Mark a disposal centre as operational again (admin only)
// @Tags Markers
// @Produce json
// @Param id path int true "Marker ID"
// @Success 200 {object} model.Marker
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/markers/{id}/reactivate [put]
func (h *MarkerHandler) Reactivate(c *gin.Context) {
	id, ok := h.markerID(c)
	if !ok {
		return
	}

	marker, err := h.markerService.Reactivate(c.Request.Context(), id)
	if err != nil {
		h.markerError(c, err)
		return
	}

	h.recordOperation(c, "reactivate", id)
	c.JSON(http.StatusOK, marker)
}

// Nearest returns the closest active disposal centre to a coordinate
// @Summary Nearest marker
// @Description Find the nearest active disposal centre to a point
// @Tags Markers
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} service.NearestResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/markers/nearest [get]
func (h *MarkerHandler) Nearest(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates: lat and lng must be numbers"})
		return
	}

	result, err := h.markerService.Nearest(c.Request.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrMarkerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active markers found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export downloads all markers as an Excel workbook
// @Summary Export markers
// @Description Download all markers as an xlsx workbook (admin only)
// @Tags Markers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} map[string]string
// @Router /api/markers/export [get]
func (h *MarkerHandler) Export(c *gin.Context) {
	buf, err := h.markerService.ExportExcel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ewaste-markers.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *MarkerHandler) markerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marker not found"})
		return 0, false
	}
	return uint(id), true
}

func (h *MarkerHandler) markerError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrMarkerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marker not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
