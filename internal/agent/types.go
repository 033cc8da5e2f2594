package agent

import "time"

// ChatRequest Một tin nhắn vào executor
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
}

// ChatResponse Kết quả xử lý một tin nhắn
type ChatResponse struct {
	Reply   string        `json:"reply"`
	Skill   string        `json:"skill"`
	Latency time.Duration `json:"latency"`
}
