package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ewastemap/internal/auth"
	"ewastemap/internal/middleware"
	"ewastemap/internal/model"
	"ewastemap/internal/service"
)

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	authService  *service.AuthService
	auditService *service.AuditService
	sessions     *auth.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, auditService *service.AuditService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
		sessions:     sessions,
	}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates form credentials. On success it sets the session
// cookie and redirects to the map; on failure it re-renders the form
// with an inline error and issues no session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Username and password are required"})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.auditService.RecordLogin(c.Request.Context(), &model.LoginLog{
				Username:  req.Username,
				Action:    service.AuditLogin,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				Success:   false,
				ErrorMsg:  err.Error(),
			})
			c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid username or password"})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, try again"})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, try again"})
		return
	}

	h.auditService.RecordLogin(c.Request.Context(), &model.LoginLog{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    service.AuditLogin,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Success:   true,
	})

	c.SetCookie(auth.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie and redirects to the login form.
func (h *AuthHandler) Logout(c *gin.Context) {
	if username := c.GetString(middleware.ContextUsername); username != "" {
		h.auditService.RecordLogin(c.Request.Context(), &model.LoginLog{
			UserID:    c.GetUint(middleware.ContextUserID),
			Username:  username,
			Action:    service.AuditLogout,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Success:   true,
		})
	}

	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// GetMe returns the current session user
// @Summary Current user
// @Description Get the authenticated user's identity and role
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	role := c.GetString(middleware.ContextRole)
	c.JSON(http.StatusOK, gin.H{
		"id":       c.GetUint(middleware.ContextUserID),
		"username": c.GetString(middleware.ContextUsername),
		"role":     role,
		"is_admin": role == model.RoleAdmin,
	})
}
