package skill

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/llm"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
)

// ChatSkill Trò chuyện tự do qua LLM, kèm lịch sử hội thoại của phiên để giữ
// mạch nói chuyện.
type ChatSkill struct {
	generator llm.Generator
	memory    *memory.Store
}

// NewChatSkill Tạo skill trò chuyện; memory có thể nil
func NewChatSkill(generator llm.Generator, mem *memory.Store) *ChatSkill {
	return &ChatSkill{generator: generator, memory: mem}
}

func (s *ChatSkill) Name() string { return NameChat }

// Handle Sinh câu trả lời trò chuyện
func (s *ChatSkill) Handle(ctx context.Context, sessionID, text string) string {
	answer, err := s.generator.Generate(ctx, s.buildPrompt(sessionID, text))
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return "Xin lỗi, trợ lý chưa được cấu hình khóa LLM nên chưa trò chuyện được. Bạn kiểm tra lại cấu hình giúp mình nhé."
		}
		logx.Warn("Chat generation failed, session %s: %v", sessionID, err)
		return fmt.Sprintf("Xin lỗi, đã có lỗi khi xử lý tin nhắn: %v", err)
	}

	if strings.TrimSpace(answer) == "" {
		return "Xin lỗi, mình chưa nghĩ ra câu trả lời. Bạn hỏi lại cách khác xem sao."
	}
	return answer
}

// buildPrompt Dựng prompt trò chuyện kèm lịch sử của phiên
func (s *ChatSkill) buildPrompt(sessionID, text string) string {
	var history string
	if s.memory != nil {
		history = s.memory.Render(sessionID)
	}

	var b strings.Builder
	b.WriteString("Bạn là trợ lý tiếng Việt thân thiện, trả lời ngắn gọn và tự nhiên.\n")
	if history != "" {
		b.WriteString("\nLịch sử hội thoại:\n")
		b.WriteString(history)
		b.WriteString("\n")
	}
	b.WriteString("\nNgười dùng: ")
	b.WriteString(text)
	return b.String()
}
