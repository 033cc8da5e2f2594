package memory

import "time"

// Vai trò của một lượt trong cửa sổ hội thoại
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn Một lượt phát ngôn trong cửa sổ hội thoại của session
type Turn struct {
	Role      string    `json:"role"` // user/assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultWindowPairs Số cặp hỏi-đáp mặc định được giữ lại cho mỗi session
const DefaultWindowPairs = 5
