package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGeocodingSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Hà Nội" {
			t.Errorf("name param = %q, want %q", got, "Hà Nội")
		}
		if got := r.URL.Query().Get("language"); got != "vi" {
			t.Errorf("language param = %q, want %q", got, "vi")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Hanoi","country_code":"VN","latitude":21.0245,"longitude":105.8412},
			{"name":"Hanoi","country_code":"US","latitude":39.1,"longitude":-87.5}
		]}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.URL, 5*time.Second)
	results, err := c.Search(context.Background(), "Hà Nội", 5, "vi")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].CountryCode != "VN" || results[0].Latitude != 21.0245 {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestGeocodingSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.URL, 5*time.Second)
	results, err := c.Search(context.Background(), "nơi không tồn tại", 5, "vi")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestForecastCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("current_weather"); got != "true" {
			t.Errorf("current_weather param = %q, want true", got)
		}
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":28.0,"weathercode":0}}`))
	}))
	defer srv.Close()

	c := NewForecastClient(srv.URL, 5*time.Second)
	cw, err := c.Current(context.Background(), 21.0285, 105.8542)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cw.Temperature != 28 || cw.WeatherCode != 0 {
		t.Errorf("current weather = %+v", cw)
	}
}

func TestForecastCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewForecastClient(srv.URL, 5*time.Second)
	if _, err := c.Current(context.Background(), 0, 0); err == nil {
		t.Error("expected error on HTTP 500, got nil")
	}
}
