package skill

import "context"

// Tên các skill, cũng là giá trị ghi vào cột skill_used của log hội thoại
const (
	NameWeather = "weather"
	NameChat    = "chat"
)

// Handler Một skill xử lý tin nhắn đã được phân loại ý định.
//
// Handle luôn trả về chuỗi hiển thị cho người dùng, không bao giờ trả lỗi:
// mọi sự cố (địa danh không phân giải được, nguồn dữ liệu chết, LLM chưa cấu
// hình) đều được chuyển thành câu trả lời tiếng Việt dễ hiểu.
type Handler interface {
	Name() string
	Handle(ctx context.Context, sessionID, text string) string
}
