package location

import (
	"context"
	"fmt"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/llm"
)

// Resolver Phân giải tên địa danh tự do thành tọa độ.
//
// Thứ tự tra cứu: cache hợp nhất (tĩnh + động) theo tên đã chuẩn hóa, khớp
// chứa nhau trên key cache, cuối cùng geocoding từ xa với lần lượt tên chuẩn
// hóa, tên gốc và biến thể không dấu.
type Resolver struct {
	cache        *Cache
	geocoder     Geocoder
	generator    llm.Generator
	countryCode  string
	provincesURL string
}

// NewResolver Tạo resolver; generator có thể nil (bỏ qua bước chuẩn hóa LLM),
// provincesURL rỗng tắt việc tự nạp lại cache ở nền.
func NewResolver(cache *Cache, geocoder Geocoder, generator llm.Generator, countryCode, provincesURL string) *Resolver {
	if cache == nil {
		cache = Shared()
	}
	return &Resolver{
		cache:        cache,
		geocoder:     geocoder,
		generator:    generator,
		countryCode:  countryCode,
		provincesURL: provincesURL,
	}
}

// Preload Hook khởi động: làm ấm cache trước khi có traffic. Idempotent —
// cache còn tươi thì không làm gì.
func (r *Resolver) Preload(ctx context.Context) error {
	if !r.cache.Stale() {
		return nil
	}
	return r.cache.Populate(ctx, r.geocoder, r.provincesURL, r.countryCode)
}

// Normalize Nhờ LLM chuẩn hóa tên địa danh (mở rộng viết tắt, bỏ tiền tố
// hành chính, giữ nguyên chính tả). Lỗi gọi từ xa thì trả về nguyên ứng viên.
func (r *Resolver) Normalize(ctx context.Context, candidate string) string {
	if r.generator == nil {
		return candidate
	}

	prompt := fmt.Sprintf(
		"Chuẩn hóa tên địa danh Việt Nam sau thành tên tỉnh/thành đầy đủ, đúng chính tả. "+
			"Mở rộng viết tắt (ví dụ \"HN\" thành \"Hà Nội\", \"HCM\" thành \"Hồ Chí Minh\"), "+
			"bỏ tiền tố \"tỉnh\"/\"thành phố\". Chỉ trả lời đúng tên địa danh, không giải thích.\n\n"+
			"Địa danh: %s", candidate)

	answer, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		logx.Debug("Location normalization failed, keeping candidate %q: %v", candidate, err)
		return candidate
	}

	answer = strings.Trim(strings.TrimSpace(answer), `"'`)
	if answer == "" {
		return candidate
	}
	return answer
}

// Resolve Phân giải ứng viên thành địa danh có tọa độ
func (r *Resolver) Resolve(ctx context.Context, candidate string) (*Place, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, false
	}

	// Cache quá hạn thì nạp lại ở nền; request hiện tại vẫn đi tiếp với
	// snapshot cũ hoặc rơi xuống geocoding trực tiếp
	r.cache.Refresh(r.geocoder, r.provincesURL, r.countryCode)

	normalized := r.Normalize(ctx, candidate)

	// 1. Khớp chính xác trong cache hợp nhất
	if p, ok := r.cache.Lookup(normalized); ok {
		return &p, true
	}

	// 2. Khớp chứa nhau trên key cache
	if p, ok := r.cache.Match(normalized); ok {
		return &p, true
	}

	// 3. Geocoding từ xa với các biến thể lần lượt
	for _, attempt := range resolveAttempts(normalized, candidate) {
		results, err := r.geocoder.Search(ctx, attempt, 5, "vi")
		if err != nil {
			logx.Debug("Geocoding attempt failed, name %q: %v", attempt, err)
			continue
		}

		if result, ok := pickPreferred(results, r.countryCode); ok {
			return &Place{
				Name:      result.Name,
				Latitude:  result.Latitude,
				Longitude: result.Longitude,
			}, true
		}
	}

	return nil, false
}

// resolveAttempts Danh sách biến thể truy vấn geocoding, đã khử trùng lặp
func resolveAttempts(normalized, original string) []string {
	attempts := []string{normalized, original, Fold(normalized)}
	seen := make(map[string]bool, len(attempts))
	out := attempts[:0]
	for _, a := range attempts {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
