package location

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Place Một địa danh đã phân giải được tọa độ
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultCacheTTL TTL mặc định của bảng tọa độ động
const DefaultCacheTTL = 24 * time.Hour

// snapshot Ảnh bất biến của bảng tọa độ tại một thời điểm.
// Reader chỉ cầm snapshot, không bao giờ thấy bảng đang ghi dở.
type snapshot struct {
	entries     map[string]Place
	populatedAt time.Time
}

// Cache Bảng tọa độ dùng chung toàn tiến trình.
//
// Gồm hai lớp: bảng tĩnh cố định lúc build và bảng động tải về theo TTL.
// Mỗi lần cập nhật thay nguyên snapshot (atomic swap), đọc ghi tách biệt;
// bảng tĩnh luôn có mặt trong snapshot và không bị ghi đè.
type Cache struct {
	ttl        atomic.Int64 // nanô giây
	snap       atomic.Value // *snapshot
	populating atomic.Bool
}

// NewCache Tạo cache mới chỉ chứa bảng tĩnh, bảng động coi như chưa tải
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache{}
	c.ttl.Store(int64(ttl))
	c.snap.Store(&snapshot{entries: mergeStatic(nil)})
	return c
}

var (
	shared     *Cache
	sharedOnce sync.Once
)

// Shared Lấy cache dùng chung của tiến trình
func Shared() *Cache {
	sharedOnce.Do(func() {
		shared = NewCache(DefaultCacheTTL)
	})
	return shared
}

// SetTTL Đổi TTL của bảng động (gọi lúc khởi động, trước khi có traffic)
func (c *Cache) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		c.ttl.Store(int64(ttl))
	}
}

// Lookup Tra cứu chính xác theo tên đã thường hóa
func (c *Cache) Lookup(name string) (Place, bool) {
	key := normalizeKey(name)
	if key == "" {
		return Place{}, false
	}
	snap := c.snapshot()
	p, ok := snap.entries[key]
	return p, ok
}

// Match Tra cứu theo quan hệ chứa nhau giữa tên và key trong cache.
// Ưu tiên key dài nhất để "tp. hồ chí minh" khớp "hồ chí minh" thay vì "huế".
func (c *Cache) Match(name string) (Place, bool) {
	key := normalizeKey(name)
	if key == "" {
		return Place{}, false
	}

	snap := c.snapshot()
	var best string
	for k := range snap.entries {
		if strings.Contains(key, k) || strings.Contains(k, key) {
			if len(k) > len(best) {
				best = k
			}
		}
	}
	if best == "" {
		return Place{}, false
	}
	return snap.entries[best], true
}

// Stale Bảng động trống hoặc đã quá TTL
func (c *Cache) Stale() bool {
	snap := c.snapshot()
	if snap.populatedAt.IsZero() {
		return true
	}
	return time.Since(snap.populatedAt) > time.Duration(c.ttl.Load())
}

// Update Thay toàn bộ bảng động bằng entries mới (đã merge bảng tĩnh đè lên)
func (c *Cache) Update(entries map[string]Place) {
	c.snap.Store(&snapshot{
		entries:     mergeStatic(entries),
		populatedAt: time.Now(),
	})
}

// Size Số địa danh trong snapshot hiện tại
func (c *Cache) Size() int {
	return len(c.snapshot().entries)
}

func (c *Cache) snapshot() *snapshot {
	return c.snap.Load().(*snapshot)
}

// mergeStatic Hợp nhất bảng động với bảng tĩnh, bảng tĩnh thắng khi trùng key
func mergeStatic(dynamic map[string]Place) map[string]Place {
	merged := make(map[string]Place, len(staticPlaces)+len(dynamic))
	for k, v := range dynamic {
		merged[k] = v
	}
	for k, v := range staticPlaces {
		merged[k] = v
	}
	return merged
}

// normalizeKey Thường hóa tên địa danh thành key tra cứu
func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
