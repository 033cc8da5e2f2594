package skill

import (
	"context"
	"fmt"
	"strconv"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/location"
	"github.com/phananhtu1998/AI-Agent/internal/openmeteo"
)

// WeatherProvider Nguồn dữ liệu thời tiết hiện tại theo tọa độ
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*openmeteo.CurrentWeather, error)
}

// WeatherSkill Trả lời câu hỏi thời tiết: tách địa danh từ câu hỏi, phân giải
// thành tọa độ rồi lấy thời tiết hiện tại từ Open-Meteo.
type WeatherSkill struct {
	resolver *location.Resolver
	weather  WeatherProvider
}

// NewWeatherSkill Tạo skill thời tiết
func NewWeatherSkill(resolver *location.Resolver, weather WeatherProvider) *WeatherSkill {
	return &WeatherSkill{resolver: resolver, weather: weather}
}

func (s *WeatherSkill) Name() string { return NameWeather }

// Handle Xử lý một câu hỏi thời tiết
func (s *WeatherSkill) Handle(ctx context.Context, _ string, text string) string {
	candidate := location.ExtractLocation(text)
	if candidate == "" {
		// Không có địa danh thì hỏi lại, không đoán mò qua geocoding
		return "Bạn muốn xem thời tiết ở đâu? Hãy cho mình biết tên tỉnh/thành nhé."
	}

	place, ok := s.resolver.Resolve(ctx, candidate)
	if !ok {
		return fmt.Sprintf("Xin lỗi, mình không tìm thấy địa điểm %q. Bạn thử nhập tên tỉnh/thành đầy đủ xem sao.", candidate)
	}

	current, err := s.weather.Current(ctx, place.Latitude, place.Longitude)
	if err != nil {
		logx.Warn("Weather fetch failed, place %s: %v", place.Name, err)
		return fmt.Sprintf("Xin lỗi, mình chưa lấy được dữ liệu thời tiết cho %s, bạn thử lại sau nhé.", place.Name)
	}

	return fmt.Sprintf("Thời tiết tại %s: Nhiệt độ hiện tại: %s°C — %s.",
		place.Name,
		strconv.FormatFloat(current.Temperature, 'f', -1, 64),
		describeWeatherCode(current.WeatherCode))
}
