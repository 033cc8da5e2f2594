package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig Đọc cấu hình từ file YAML và biến môi trường
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Đường dẫn tìm kiếm file cấu hình mặc định
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.aiagent")
		v.AddConfigPath("/etc/aiagent")
	}

	// Hỗ trợ biến môi trường
	v.SetEnvPrefix("AIAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Không tìm thấy file cấu hình thì dùng giá trị mặc định
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	expandEnvVars(&config)

	return &config, nil
}

// setDefaults Thiết lập giá trị cấu hình mặc định
func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.http.port", 9999)
	v.SetDefault("server.http.debug", false)

	// LLM (endpoint tương thích OpenAI của Gemini)
	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("llm.timeout", 60)

	// Geocoding
	v.SetDefault("geo.geocoding_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("geo.provinces_url", "https://provinces.open-api.vn/api/")
	v.SetDefault("geo.country_code", "VN")
	v.SetDefault("geo.cache_ttl", 24)
	v.SetDefault("geo.timeout", 10)

	// Weather
	v.SetDefault("weather.base_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.timeout", 10)

	// Cache
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.type", "redis")
	v.SetDefault("cache.redis.host", "127.0.0.1")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)

	// Memory
	v.SetDefault("memory.window_pairs", 5)
}

// expandEnvVars Mở rộng biến môi trường trong cấu hình
func expandEnvVars(config *Config) {
	config.LLM.APIKey = os.ExpandEnv(config.LLM.APIKey)
	config.Cache.Redis.Password = os.ExpandEnv(config.Cache.Redis.Password)
}
