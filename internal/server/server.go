package server

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ewastemap/internal/auth"
	"ewastemap/internal/config"
	"ewastemap/internal/handler"
	"ewastemap/internal/middleware"
	"ewastemap/internal/service"
	"ewastemap/web"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	wsHub  *handler.WSHub
}

// NewServer creates a new server instance. The Redis client may be nil,
// in which case login rate limiting is disabled.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
	}
}

// Setup initializes routes and handlers
func (s *Server) Setup() {
	// WebSocket hub first, the marker service publishes into it
	s.wsHub = handler.NewWSHub()
	wsHandler := handler.NewWSHandler(s.wsHub)
	go s.wsHub.Run()
	log.Println("[Server] WebSocket hub started")

	// Services
	authService := service.NewAuthService(s.db)
	auditService := service.NewAuditService(s.db)
	markerService := service.NewMarkerService(s.db)
	markerService.SetEventPublisher(s.wsHub)

	sessions := auth.NewSessionManager(s.config.SessionSecret, s.config.SessionTTL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, auditService, sessions)
	markerHandler := handler.NewMarkerHandler(markerService, auditService)
	auditHandler := handler.NewAuditHandler(auditService)
	pageHandler := handler.NewPageHandler(s.config)

	s.router = gin.Default()
	s.router.Use(middleware.CORS())
	s.router.SetHTMLTemplate(template.Must(template.ParseFS(web.FS, "templates/*.html")))

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		log.Fatalf("[Server] Failed to mount static assets: %v", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))

	// Public routes
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/login", authHandler.LoginPage)
	s.router.POST("/login",
		middleware.LoginRateLimit(s.redis, s.config.LoginRateLimit, s.config.LoginRateWindow),
		authHandler.Login)

	// Everything else requires a session
	authed := s.router.Group("/", middleware.SessionAuth(sessions))
	{
		authed.GET("", pageHandler.Index)
		authed.GET("/logout", authHandler.Logout)
		authed.GET("/ws/markers", wsHandler.HandleMarkers)

		api := authed.Group("/api")
		{
			api.GET("/auth/me", authHandler.GetMe)

			// Read access for every authenticated role
			api.GET("/markers", markerHandler.List)
			api.GET("/markers/nearest", markerHandler.Nearest)

			// Mutations and exports are admin only
			adminOnly := middleware.AdminRequired()
			api.POST("/markers", adminOnly, markerHandler.Create)
			api.DELETE("/markers/:id", adminOnly, markerHandler.Delete)
			api.PUT("/markers/:id/shutdown", adminOnly, markerHandler.Shutdown)
			api.PUT("/markers/:id/reactivate", adminOnly, markerHandler.Reactivate)
			api.GET("/markers/export", adminOnly, markerHandler.Export)

			api.GET("/audit/logins", adminOnly, auditHandler.ListLogins)
			api.GET("/audit/operations", adminOnly, auditHandler.ListOperations)
		}
	}
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	log.Printf("[Server] HTTP server listening on %s", addr)
	return s.router.Run(addr)
}

// Router returns the gin router for testing
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() {
	if s.wsHub != nil {
		s.wsHub.Stop()
		log.Println("[Server] WebSocket hub stopped")
	}
}
