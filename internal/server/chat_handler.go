package server

import (
	"net/http"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
)

// ChatAPIRequest Request của POST /api/v1/chat
type ChatAPIRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// ChatAPIResponse Response của POST /api/v1/chat
type ChatAPIResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	Response       string  `json:"response"`
	SessionID      string  `json:"session_id"`
	SkillUsed      string  `json:"skill_used"`
	ProcessingTime float64 `json:"processing_time"` // giây
	ConversationID string  `json:"conversation_id,omitempty"`
}

// handleChat Nhận một tin nhắn, chạy qua executor rồi ghi log hội thoại
func (s *HTTPGinServer) handleChat(c *gin.Context) {
	var req ChatAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	// Không có session thì cấp mới, client giữ lại để nối tiếp hội thoại
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	resp := s.executor.Execute(c.Request.Context(), agent.ChatRequest{
		SessionID: sessionID,
		Message:   req.Message,
		Source:    "api",
	})
	processingTime := resp.Latency.Seconds()

	// Ghi log là phụ trợ, lỗi không làm hỏng câu trả lời
	var conversationID string
	if s.conversations != nil {
		metadata := map[string]any{
			"source":     "api",
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		id, err := s.conversations.LogConversation(c.Request.Context(), sessionID, req.Message, resp.Reply, resp.Skill, processingTime, metadata)
		if err != nil {
			logx.Warn("Failed to log conversation, session %s: %v", sessionID, err)
		} else {
			conversationID = id
		}
	}

	c.JSON(http.StatusOK, ChatAPIResponse{
		Success:        true,
		Message:        "OK",
		Response:       resp.Reply,
		SessionID:      sessionID,
		SkillUsed:      resp.Skill,
		ProcessingTime: processingTime,
		ConversationID: conversationID,
	})
}

// handleGetChatSession Xem cửa sổ hội thoại đang giữ trong bộ nhớ của một phiên
func (s *HTTPGinServer) handleGetChatSession(c *gin.Context) {
	sessionID := c.Param("id")

	turns := s.executor.Memory().Turns(sessionID)
	s.success(c, gin.H{
		"session_id": sessionID,
		"turns":      turns,
		"turn_count": len(turns),
	})
}

// handleDeleteChatSession Xóa cửa sổ bộ nhớ và log đã lưu của một phiên
func (s *HTTPGinServer) handleDeleteChatSession(c *gin.Context) {
	sessionID := c.Param("id")

	s.executor.Memory().Evict(sessionID)

	var deleted int64
	if s.conversations != nil {
		n, err := s.conversations.DeleteSession(c.Request.Context(), sessionID)
		if err != nil {
			s.error(c, http.StatusInternalServerError, "Failed to delete session: "+err.Error())
			return
		}
		deleted = n
	}

	s.success(c, gin.H{
		"session_id":      sessionID,
		"deleted_records": deleted,
	})
}
