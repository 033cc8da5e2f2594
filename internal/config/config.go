package config

// Config Cấu hình toàn cục của ứng dụng
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Geo     GeoConfig     `mapstructure:"geo"`
	Weather WeatherConfig `mapstructure:"weather"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Memory  MemoryConfig  `mapstructure:"memory"`
}

// ServerConfig Cấu hình HTTP server
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig Cấu hình HTTP
type HTTPConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// LLMConfig Cấu hình mô hình ngôn ngữ
type LLMConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // giây
}

// GeoConfig Cấu hình geocoding và cache tọa độ
type GeoConfig struct {
	GeocodingURL string `mapstructure:"geocoding_url"`
	ProvincesURL string `mapstructure:"provinces_url"`
	CountryCode  string `mapstructure:"country_code"`
	CacheTTL     int    `mapstructure:"cache_ttl"` // giờ
	Timeout      int    `mapstructure:"timeout"`   // giây
}

// WeatherConfig Cấu hình dịch vụ thời tiết
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // giây
}

// CacheConfig Cấu hình cache (Redis)
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Type    string      `mapstructure:"type"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig Cấu hình Redis
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MemoryConfig Cấu hình bộ nhớ hội thoại ngắn hạn
type MemoryConfig struct {
	WindowPairs int `mapstructure:"window_pairs"` // số cặp hỏi-đáp giữ lại
}
