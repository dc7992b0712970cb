package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ewastemap/internal/service"
)

// AuditHandler exposes login and operation audit logs to admins
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListLogins returns login/logout audit entries, newest first
// @Summary List login logs
// @Description List login and logout attempts (admin only)
// @Tags Audit
// @Produce json
// @Param username query string false "Filter by username"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} model.LoginLog
// @Failure 403 {object} map[string]string
// @Router /api/audit/logins [get]
func (h *AuditHandler) ListLogins(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.auditService.ListLogins(c.Request.Context(), c.Query("username"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListOperations returns marker mutation audit entries, newest first
// @Summary List operation logs
// @Description List marker mutations performed by admins (admin only)
// @Tags Audit
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} model.OperationLog
// @Failure 403 {object} map[string]string
// @Router /api/audit/operations [get]
func (h *AuditHandler) ListOperations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.auditService.ListOperations(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
