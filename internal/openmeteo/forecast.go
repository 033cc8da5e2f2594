package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CurrentWeather Thời tiết hiện tại tại một tọa độ
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
}

// forecastResponse Phản hồi của API forecast
type forecastResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// ForecastClient Client dữ liệu thời tiết của Open-Meteo
type ForecastClient struct {
	baseURL string
	client  *http.Client
}

// NewForecastClient Tạo forecast client với timeout giới hạn
func NewForecastClient(baseURL string, timeout time.Duration) *ForecastClient {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ForecastClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Current Lấy thời tiết hiện tại theo tọa độ
func (c *ForecastClient) Current(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request failed with status %d", resp.StatusCode)
	}

	var result forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	if result.CurrentWeather == nil {
		return nil, fmt.Errorf("forecast response has no current weather")
	}

	return result.CurrentWeather, nil
}
