package model

import "time"

// Conversation Bản ghi một lượt hội thoại đã hoàn tất (user hỏi + agent trả lời)
type Conversation struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`
	ConversationID string     `json:"conversation_id" gorm:"uniqueIndex;size:36"`
	SessionID      string     `json:"session_id" gorm:"index;size:100"`
	UserMessage    string     `json:"user_message" gorm:"type:text"`
	AgentResponse  string     `json:"agent_response" gorm:"type:text"`
	SkillUsed      string     `json:"skill_used" gorm:"index;size:50"` // "weather" | "chat" | "error"
	ProcessingTime float64    `json:"processing_time"`                 // giây
	Metadata       string     `json:"metadata" gorm:"type:text"`       // JSON bổ sung
}

// TableName chỉ định tên bảng
func (Conversation) TableName() string {
	return "conversations"
}
