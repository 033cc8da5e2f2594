package intent

import (
	"context"
	"fmt"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/llm"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
)

// Intent Nhãn ý định của một tin nhắn
type Intent string

const (
	// IntentWeather Hỏi thời tiết
	IntentWeather Intent = "weather"
	// IntentChat Trò chuyện thông thường, cũng là nhãn mặc định khi không
	// phân loại được
	IntentChat Intent = "chat"
)

// Classifier Phân loại ý định tin nhắn bằng LLM, kèm lịch sử hội thoại của
// phiên để xử lý câu hỏi nối tiếp ("thế còn ngày mai?").
type Classifier struct {
	generator llm.Generator
	memory    *memory.Store
}

// NewClassifier Tạo classifier; memory có thể nil nếu không cần lịch sử
func NewClassifier(generator llm.Generator, mem *memory.Store) *Classifier {
	return &Classifier{generator: generator, memory: mem}
}

// Classify Phân loại tin nhắn thành weather hoặc chat.
//
// Tin nhắn rỗng trả về chat ngay không gọi LLM. Mọi trường hợp lỗi (LLM chưa
// cấu hình, gọi từ xa thất bại, trả lời không đọc được) đều rơi về chat —
// hỏi thời tiết nhầm thành trò chuyện vẫn trả lời được, ngược lại thì không.
func (c *Classifier) Classify(ctx context.Context, text, sessionID string) Intent {
	if strings.TrimSpace(text) == "" {
		return IntentChat
	}

	answer, err := c.generator.Generate(ctx, c.buildPrompt(text, sessionID))
	if err != nil {
		logx.Debug("Intent classification failed, falling back to chat: %v", err)
		return IntentChat
	}

	if strings.Contains(strings.ToLower(answer), "weather") {
		return IntentWeather
	}
	return IntentChat
}

// buildPrompt Dựng prompt phân loại kèm lịch sử hội thoại của phiên
func (c *Classifier) buildPrompt(text, sessionID string) string {
	var history string
	if c.memory != nil {
		history = c.memory.Render(sessionID)
	}
	if history == "" {
		history = "(chưa có)"
	}

	return fmt.Sprintf(
		"Bạn là bộ phân loại ý định cho trợ lý tiếng Việt.\n"+
			"Phân loại tin nhắn cuối cùng của người dùng vào đúng một trong hai nhãn:\n"+
			"- weather: hỏi về thời tiết, nhiệt độ, mưa nắng, dự báo\n"+
			"- chat: mọi nội dung còn lại\n\n"+
			"Lịch sử hội thoại:\n%s\n\n"+
			"Tin nhắn: %s\n\n"+
			"Chỉ trả lời đúng một từ: weather hoặc chat.",
		history, text)
}
