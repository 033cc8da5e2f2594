package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/phananhtu1998/AI-Agent/internal/model"
)

// LogConversationRequest Request ghi log hội thoại thủ công
type LogConversationRequest struct {
	SessionID      string         `json:"session_id" binding:"required"`
	UserMessage    string         `json:"user_message" binding:"required"`
	AgentResponse  string         `json:"agent_response" binding:"required"`
	SkillUsed      string         `json:"skill_used"`
	ProcessingTime float64        `json:"processing_time"`
	Metadata       map[string]any `json:"metadata"`
}

// handleLogConversation Ghi một lượt hội thoại từ bên ngoài (ví dụ client tự xử lý)
func (s *HTTPGinServer) handleLogConversation(c *gin.Context) {
	if s.conversations == nil {
		s.error(c, http.StatusServiceUnavailable, "Conversation logging is not available")
		return
	}

	var req LogConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := s.conversations.LogConversation(c.Request.Context(), req.SessionID, req.UserMessage, req.AgentResponse, req.SkillUsed, req.ProcessingTime, req.Metadata)
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to log conversation: "+err.Error())
		return
	}

	s.success(c, gin.H{"conversation_id": id})
}

// handleConversationHistory Lấy lịch sử đã lưu của một phiên, có phân trang
func (s *HTTPGinServer) handleConversationHistory(c *gin.Context) {
	if s.conversations == nil {
		s.error(c, http.StatusServiceUnavailable, "Conversation logging is not available")
		return
	}

	sessionID := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	// Giới hạn giống tầng service, để thông tin phân trang khớp dữ liệu trả về
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conversations, total, err := s.conversations.GetConversationHistory(c.Request.Context(), sessionID, limit, offset)
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to get history: "+err.Error())
		return
	}

	totalPage := int((total + int64(limit) - 1) / int64(limit))
	s.success(c, model.ListResponse{
		Items: conversations,
		PageInfo: &model.PageInfo{
			PageNum:   offset/limit + 1,
			PageSize:  limit,
			Total:     int(total),
			TotalPage: totalPage,
		},
	})
}

// handleSessionSummary Lấy tóm tắt của một phiên
func (s *HTTPGinServer) handleSessionSummary(c *gin.Context) {
	if s.conversations == nil {
		s.error(c, http.StatusServiceUnavailable, "Conversation logging is not available")
		return
	}

	sessionID := c.Param("id")
	summary, err := s.conversations.GetSessionSummary(c.Request.Context(), sessionID)
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to get session summary: "+err.Error())
		return
	}
	if summary == nil {
		s.error(c, http.StatusNotFound, "Session not found")
		return
	}

	s.success(c, summary)
}

// handleConversationStats Thống kê tổng hợp log hội thoại
func (s *HTTPGinServer) handleConversationStats(c *gin.Context) {
	if s.conversations == nil {
		s.error(c, http.StatusServiceUnavailable, "Conversation logging is not available")
		return
	}

	stats, err := s.conversations.GetStats(c.Request.Context())
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to get stats: "+err.Error())
		return
	}

	s.success(c, stats)
}

// handleTestLog Ghi một bản ghi mẫu để kiểm tra đường ghi log end-to-end
func (s *HTTPGinServer) handleTestLog(c *gin.Context) {
	if s.conversations == nil {
		s.error(c, http.StatusServiceUnavailable, "Conversation logging is not available")
		return
	}

	id, err := s.conversations.LogConversation(c.Request.Context(),
		"test-session",
		"Tin nhắn kiểm tra",
		"Phản hồi kiểm tra",
		"chat",
		0.01,
		map[string]any{"source": "test-log"},
	)
	if err != nil {
		s.error(c, http.StatusInternalServerError, "Failed to write test log: "+err.Error())
		return
	}

	s.success(c, gin.H{"conversation_id": id})
}
