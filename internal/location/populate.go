package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/openmeteo"
)

// Geocoder Hợp đồng geocoding mà bộ nạp cache và resolver cùng dùng
type Geocoder interface {
	Search(ctx context.Context, name string, count int, lang string) ([]openmeteo.GeoResult, error)
}

// provinceEntry Một tỉnh/thành trong danh sách hành chính
type provinceEntry struct {
	Name string `json:"name"`
}

// Populate Nạp bảng động: tải danh sách tỉnh/thành rồi geocode từng tên.
// Chỉ một goroutine nạp tại một thời điểm; request phân giải chạy song song
// với lúc nạp sẽ rơi thẳng xuống geocoding trực tiếp, đó là hành vi xuống
// cấp chấp nhận được chứ không phải lỗi.
func (c *Cache) Populate(ctx context.Context, geocoder Geocoder, provincesURL, countryCode string) error {
	if !c.populating.CompareAndSwap(false, true) {
		return nil // đang có goroutine khác nạp
	}
	defer c.populating.Store(false)

	names, err := fetchProvinceNames(ctx, provincesURL)
	if err != nil {
		return fmt.Errorf("failed to fetch province list: %w", err)
	}

	entries := make(map[string]Place, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		display := stripAdminPrefix(name)
		results, err := geocoder.Search(ctx, display, 3, "vi")
		if err != nil {
			logx.Debug("Geocoding failed during cache population, name %s: %v", display, err)
			continue
		}

		r, ok := pickPreferred(results, countryCode)
		if !ok {
			continue
		}

		entries[normalizeKey(display)] = Place{
			Name:      display,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		}
	}

	if len(entries) == 0 {
		return fmt.Errorf("province cache population produced no entries")
	}

	c.Update(entries)
	logx.Info("Location cache populated, entries %d", c.Size())
	return nil
}

// Refresh Nạp lại bảng động ở nền nếu đã quá TTL
func (c *Cache) Refresh(geocoder Geocoder, provincesURL, countryCode string) {
	if provincesURL == "" || !c.Stale() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := c.Populate(ctx, geocoder, provincesURL, countryCode); err != nil {
			logx.Warn("Location cache refresh failed: %v", err)
		}
	}()
}

// fetchProvinceNames Tải danh sách tên tỉnh/thành
func fetchProvinceNames(ctx context.Context, provincesURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provincesURL, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("province list request failed with status %d", resp.StatusCode)
	}

	var provinces []provinceEntry
	if err := json.NewDecoder(resp.Body).Decode(&provinces); err != nil {
		return nil, fmt.Errorf("failed to decode province list: %w", err)
	}

	names := make([]string, 0, len(provinces))
	for _, p := range provinces {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// stripAdminPrefix Bỏ tiền tố hành chính "Tỉnh"/"Thành phố" khỏi tên
func stripAdminPrefix(name string) string {
	for _, prefix := range []string{"Thành phố ", "Tỉnh "} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(name, prefix))
		}
	}
	return strings.TrimSpace(name)
}

// pickPreferred Chọn kết quả geocoding: ưu tiên đúng mã quốc gia, không có
// thì lấy kết quả đầu tiên
func pickPreferred(results []openmeteo.GeoResult, countryCode string) (openmeteo.GeoResult, bool) {
	if len(results) == 0 {
		return openmeteo.GeoResult{}, false
	}
	if countryCode != "" {
		for _, r := range results {
			if strings.EqualFold(r.CountryCode, countryCode) {
				return r, true
			}
		}
	}
	return results[0], true
}
