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

// GeoResult Một kết quả geocoding
type GeoResult struct {
	Name        string  `json:"name"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// geocodingResponse Phản hồi của API geocoding
type geocodingResponse struct {
	Results []GeoResult `json:"results"`
}

// GeocodingClient Client geocoding của Open-Meteo
type GeocodingClient struct {
	baseURL string
	client  *http.Client
}

// NewGeocodingClient Tạo geocoding client với timeout giới hạn
func NewGeocodingClient(baseURL string, timeout time.Duration) *GeocodingClient {
	if baseURL == "" {
		baseURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GeocodingClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search Tìm tọa độ theo tên địa danh, kết quả theo thứ tự liên quan giảm dần
func (c *GeocodingClient) Search(ctx context.Context, name string, count int, lang string) ([]GeoResult, error) {
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("count", strconv.Itoa(count))
	params.Set("format", "json")
	if lang != "" {
		params.Set("language", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var result geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	return result.Results, nil
}
