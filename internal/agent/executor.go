package agent

import (
	"context"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/intent"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
	"github.com/phananhtu1998/AI-Agent/internal/skill"
)

// Executor Bộ điều phối tin nhắn: ghi lượt hỏi, phân loại ý định, giao cho
// skill tương ứng rồi ghi câu trả lời vào bộ nhớ hội thoại.
//
// Mỗi session được tuần tự hóa bằng một khóa riêng; hai request cùng session
// không bao giờ xen kẽ thao tác trên bộ nhớ, các session khác nhau chạy song
// song tự do.
type Executor struct {
	classifier *intent.Classifier
	memory     *memory.Store
	handlers   map[intent.Intent]skill.Handler

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewExecutor Tạo executor với các skill đã đăng ký theo ý định
func NewExecutor(classifier *intent.Classifier, mem *memory.Store, weather, chat skill.Handler) *Executor {
	return &Executor{
		classifier: classifier,
		memory:     mem,
		handlers: map[intent.Intent]skill.Handler{
			intent.IntentWeather: weather,
			intent.IntentChat:    chat,
		},
		locks: make(map[string]*sync.Mutex),
	}
}

// Execute Xử lý trọn một tin nhắn của session
func (e *Executor) Execute(ctx context.Context, req ChatRequest) ChatResponse {
	start := time.Now()

	lock := e.sessionLock(req.SessionID)
	lock.Lock()
	defer lock.Unlock()

	// Ghi lượt hỏi trước với placeholder trả lời trống, để classifier và
	// skill cùng thấy tin nhắn hiện tại trong lịch sử
	e.memory.Record(req.SessionID, req.Message, "")

	label := e.classifier.Classify(ctx, req.Message, req.SessionID)
	handler := e.handlers[label]

	reply := handler.Handle(ctx, req.SessionID, req.Message)
	if ctx.Err() != nil {
		reply = "Xin lỗi, yêu cầu đã bị hủy giữa chừng. Bạn gửi lại tin nhắn giúp mình nhé."
	}

	e.memory.FillAssistant(req.SessionID, reply)

	latency := time.Since(start)
	logx.Debug("Message handled, session %s skill %s latency %s", req.SessionID, handler.Name(), latency)

	return ChatResponse{
		Reply:   reply,
		Skill:   handler.Name(),
		Latency: latency,
	}
}

// Memory Bộ nhớ hội thoại mà executor đang dùng
func (e *Executor) Memory() *memory.Store {
	return e.memory
}

// sessionLock Lấy (hoặc tạo) khóa của một session
func (e *Executor) sessionLock(sessionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[sessionID] = lock
	}
	return lock
}
