package skill

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phananhtu1998/AI-Agent/internal/llm"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
)

// stubGenerator Generator giả ghi lại prompt nhận được
type stubGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func TestChatHandleReturnsModelAnswer(t *testing.T) {
	s := NewChatSkill(&stubGenerator{answer: "Chào bạn!"}, nil)

	if got := s.Handle(context.Background(), "s1", "xin chào"); got != "Chào bạn!" {
		t.Errorf("Handle = %q, want %q", got, "Chào bạn!")
	}
}

func TestChatHandleBlankAnswerFallback(t *testing.T) {
	s := NewChatSkill(&stubGenerator{answer: "   "}, nil)

	got := s.Handle(context.Background(), "s1", "xin chào")
	if !strings.Contains(got, "chưa nghĩ ra câu trả lời") {
		t.Errorf("Handle = %q, want blank-answer fallback", got)
	}
}

func TestChatHandleNotConfigured(t *testing.T) {
	s := NewChatSkill(&stubGenerator{err: llm.ErrNotConfigured}, nil)

	got := s.Handle(context.Background(), "s1", "xin chào")
	if !strings.Contains(got, "chưa được cấu hình") {
		t.Errorf("Handle = %q, want configuration message", got)
	}
}

func TestChatHandleRemoteFailure(t *testing.T) {
	s := NewChatSkill(&stubGenerator{err: errors.New("rate limited")}, nil)

	got := s.Handle(context.Background(), "s1", "xin chào")
	if !strings.Contains(got, "rate limited") {
		t.Errorf("Handle = %q, want underlying error surfaced", got)
	}
}

func TestChatHandlePromptCarriesHistory(t *testing.T) {
	mem := memory.NewStore(memory.DefaultWindowPairs)
	mem.Record("s1", "mình tên Tuấn", "Chào Tuấn!")

	gen := &stubGenerator{answer: "Tên bạn là Tuấn."}
	s := NewChatSkill(gen, mem)
	s.Handle(context.Background(), "s1", "mình tên gì?")

	if len(gen.prompts) != 1 {
		t.Fatalf("model called %d times, want 1", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "mình tên Tuấn") {
		t.Error("prompt does not include prior user turn")
	}
	if !strings.Contains(gen.prompts[0], "mình tên gì?") {
		t.Error("prompt does not include the current message")
	}
}
