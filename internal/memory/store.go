package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store Bộ nhớ hội thoại ngắn hạn theo session.
//
// Mỗi session giữ một cửa sổ trượt tối đa 2×K lượt (K cặp hỏi-đáp), lượt cũ
// nhất bị loại trước (FIFO). Store an toàn cho nhiều goroutine; riêng thứ tự
// lượt trong một session thì bên gọi vẫn phải tuần tự hóa các request cùng
// session (executor giữ khóa theo session).
type Store struct {
	mu          sync.RWMutex
	windowPairs int
	sessions    map[string][]Turn
}

// NewStore Tạo bộ nhớ hội thoại với K cặp hỏi-đáp mỗi session
func NewStore(windowPairs int) *Store {
	if windowPairs <= 0 {
		windowPairs = DefaultWindowPairs
	}
	return &Store{
		windowPairs: windowPairs,
		sessions:    make(map[string][]Turn),
	}
}

// Record Ghi một lượt hỏi-đáp vào session.
// assistantText rỗng là placeholder hợp lệ, dùng giữa lúc nhận câu hỏi và lúc
// có câu trả lời; điền lại bằng FillAssistant.
func (s *Store) Record(sessionID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	turns := s.sessions[sessionID]

	turns = append(turns,
		Turn{Role: RoleUser, Content: userText, CreatedAt: now},
		Turn{Role: RoleAssistant, Content: assistantText, CreatedAt: now},
	)

	// Giới hạn cửa sổ: tối đa 2×K lượt, bỏ lượt cũ nhất trước
	if max := 2 * s.windowPairs; len(turns) > max {
		turns = turns[len(turns)-max:]
	}

	s.sessions[sessionID] = turns
}

// FillAssistant Điền câu trả lời vào placeholder assistant gần nhất còn trống
func (s *Store) FillAssistant(sessionID, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[sessionID]
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleAssistant && turns[i].Content == "" {
			turns[i].Content = assistantText
			turns[i].CreatedAt = time.Now()
			return
		}
	}
}

// Render Xuất lịch sử hội thoại của session dưới dạng "role: text" mỗi dòng.
// Session chưa có lịch sử trả về chuỗi rỗng; placeholder trống bị bỏ qua.
func (s *Store) Render(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range turns {
		if t.Content == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Turns Trả về bản sao các lượt hiện có của session (phục vụ kiểm tra/giám sát)
func (s *Store) Turns(sessionID string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Evict Xóa toàn bộ cửa sổ của một session (dùng khi bên ngoài dọn session rảnh)
func (s *Store) Evict(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}
