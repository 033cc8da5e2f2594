package agent

import (
	"context"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/phananhtu1998/AI-Agent/internal/config"
	"github.com/phananhtu1998/AI-Agent/internal/intent"
	"github.com/phananhtu1998/AI-Agent/internal/llm"
	"github.com/phananhtu1998/AI-Agent/internal/location"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
	"github.com/phananhtu1998/AI-Agent/internal/openmeteo"
	"github.com/phananhtu1998/AI-Agent/internal/skill"
)

// Initialize Dựng toàn bộ cây phụ thuộc của agent từ cấu hình: LLM client,
// geocoding/forecast client, cache tọa độ, resolver, classifier, hai skill và
// executor. Gọi một lần lúc khởi động, trước khi nhận traffic.
func Initialize(ctx context.Context, cfg *config.Config) *Executor {
	generator := llm.NewClient(&llm.Config{
		Enabled: cfg.LLM.Enabled,
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	})

	geocoder := openmeteo.NewGeocodingClient(cfg.Geo.GeocodingURL, time.Duration(cfg.Geo.Timeout)*time.Second)
	forecast := openmeteo.NewForecastClient(cfg.Weather.BaseURL, time.Duration(cfg.Weather.Timeout)*time.Second)

	cache := location.Shared()
	cache.SetTTL(time.Duration(cfg.Geo.CacheTTL) * time.Hour)

	resolver := location.NewResolver(cache, geocoder, generator, cfg.Geo.CountryCode, cfg.Geo.ProvincesURL)

	mem := memory.NewStore(cfg.Memory.WindowPairs)
	classifier := intent.NewClassifier(generator, mem)

	weatherSkill := skill.NewWeatherSkill(resolver, forecast)
	chatSkill := skill.NewChatSkill(generator, mem)

	executor := NewExecutor(classifier, mem, weatherSkill, chatSkill)

	// Làm ấm cache tọa độ ở nền, không chặn khởi động
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		if err := resolver.Preload(warmCtx); err != nil {
			logx.Warn("Location cache preload failed, static table remains: %v", err)
		}
	}()

	logx.Info("Agent initialized, memory window %d pairs", cfg.Memory.WindowPairs)
	return executor
}
