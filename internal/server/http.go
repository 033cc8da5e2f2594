package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
	"github.com/phananhtu1998/AI-Agent/internal/config"
	"github.com/phananhtu1998/AI-Agent/internal/model"
	"github.com/phananhtu1998/AI-Agent/internal/service"
	"github.com/phananhtu1998/AI-Agent/web"
)

// HTTPGinServer HTTP server dựa trên Gin
type HTTPGinServer struct {
	config        *config.Config
	engine        *gin.Engine
	server        *http.Server
	executor      *agent.Executor
	conversations *service.ConversationService
	startedAt     time.Time
}

// NewHTTPGinServer Tạo HTTP server với executor và dịch vụ log hội thoại
func NewHTTPGinServer(cfg *config.Config, executor *agent.Executor, conversations *service.ConversationService) *HTTPGinServer {
	// Thiết lập chế độ Gin
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &HTTPGinServer{
		config:        cfg,
		engine:        gin.New(),
		executor:      executor,
		conversations: conversations,
		startedAt:     time.Now(),
	}

	s.registerMiddlewares()
	s.registerRoutes()

	return s
}

// registerMiddlewares Đăng ký middleware
func (s *HTTPGinServer) registerMiddlewares() {
	// Phục hồi từ panic
	s.engine.Use(gin.Recovery())

	s.engine.Use(s.loggingMiddleware())
	s.engine.Use(s.corsMiddleware())
}

// loggingMiddleware Middleware log request
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP request, method %s, path %s, status %d, duration %s, remote_addr %s",
			method, path, status, duration, c.ClientIP())
	}
}

// corsMiddleware Middleware CORS
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerRoutes Đăng ký route
func (s *HTTPGinServer) registerRoutes() {
	// Trang chat nhúng sẵn
	s.engine.GET("/chat", s.handleChatPage)

	v1 := s.engine.Group("/api/v1")
	{
		// Kiểm tra sức khỏe
		v1.GET("/health", s.handleHealth)
		v1.GET("/health/ping", s.handlePing)
		v1.GET("/health/status", s.handleStatus)

		// Hội thoại với agent
		v1.POST("/chat", s.handleChat)
		v1.GET("/chat/session/:id", s.handleGetChatSession)
		v1.DELETE("/chat/session/:id", s.handleDeleteChatSession)

		// Log hội thoại
		conversation := v1.Group("/conversation")
		{
			conversation.POST("/log", s.handleLogConversation)
			conversation.GET("/history/:id", s.handleConversationHistory)
			conversation.GET("/summary/:id", s.handleSessionSummary)
			conversation.GET("/stats", s.handleConversationStats)
			conversation.GET("/test-log", s.handleTestLog)
		}
	}
}

// Start Khởi động HTTP server
func (s *HTTPGinServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.HTTP.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop Dừng HTTP server
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// success Trả phản hồi thành công
func (s *HTTPGinServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, model.Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// error Trả phản hồi lỗi
func (s *HTTPGinServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, model.Response{
		Code:    code,
		Message: message,
	})
}

// ==================== Kiểm tra sức khỏe ====================

func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	s.success(c, gin.H{
		"status": "healthy",
	})
}

func (s *HTTPGinServer) handlePing(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func (s *HTTPGinServer) handleStatus(c *gin.Context) {
	s.success(c, gin.H{
		"status":      "healthy",
		"uptime":      time.Since(s.startedAt).String(),
		"llm_enabled": s.config.LLM.Enabled,
	})
}

// ==================== Trang chat ====================

func (s *HTTPGinServer) handleChatPage(c *gin.Context) {
	page, err := web.ChatPage()
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to load chat page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
