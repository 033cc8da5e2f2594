package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
	"github.com/phananhtu1998/AI-Agent/internal/config"
	"github.com/phananhtu1998/AI-Agent/internal/intent"
	"github.com/phananhtu1998/AI-Agent/internal/location"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
	"github.com/phananhtu1998/AI-Agent/internal/openmeteo"
	"github.com/phananhtu1998/AI-Agent/internal/skill"
)

type scriptedGenerator struct {
	answers []string
	calls   int
}

func (g *scriptedGenerator) Generate(context.Context, string) (string, error) {
	if g.calls >= len(g.answers) {
		return "chat", nil
	}
	answer := g.answers[g.calls]
	g.calls++
	return answer, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Search(context.Context, string, int, string) ([]openmeteo.GeoResult, error) {
	return nil, nil
}

type stubWeather struct{}

func (stubWeather) Current(context.Context, float64, float64) (*openmeteo.CurrentWeather, error) {
	return &openmeteo.CurrentWeather{Temperature: 28, WeatherCode: 0}, nil
}

func newTestServer(gen *scriptedGenerator) *HTTPGinServer {
	mem := memory.NewStore(memory.DefaultWindowPairs)
	resolver := location.NewResolver(location.NewCache(time.Hour), stubGeocoder{}, nil, "VN", "")
	executor := agent.NewExecutor(
		intent.NewClassifier(gen, mem),
		mem,
		skill.NewWeatherSkill(resolver, stubWeather{}),
		skill.NewChatSkill(gen, mem),
	)

	cfg := &config.Config{}
	cfg.Server.HTTP.Port = 0
	return NewHTTPGinServer(cfg, executor, nil)
}

func postChat(t *testing.T, s *HTTPGinServer, body map[string]any) (*httptest.ResponseRecorder, ChatAPIResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp ChatAPIResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return w, resp
}

func TestHandleChatWeather(t *testing.T) {
	s := newTestServer(&scriptedGenerator{answers: []string{"weather"}})

	w, resp := postChat(t, s, map[string]any{"message": "Thời tiết Hà Nội hôm nay", "session_id": "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.SkillUsed != "weather" {
		t.Errorf("SkillUsed = %q, want weather", resp.SkillUsed)
	}
	want := "Thời tiết tại Hà Nội: Nhiệt độ hiện tại: 28°C — Trời quang."
	if resp.Response != want {
		t.Errorf("Response = %q, want %q", resp.Response, want)
	}
	if resp.SessionID != "s1" {
		t.Errorf("SessionID = %q, want s1", resp.SessionID)
	}
}

func TestHandleChatAssignsSession(t *testing.T) {
	s := newTestServer(&scriptedGenerator{answers: []string{"chat", "Chào bạn!"}})

	w, resp := postChat(t, s, map[string]any{"message": "xin chào"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if resp.SessionID == "" {
		t.Error("SessionID is empty, want generated id")
	}
	if resp.Response != "Chào bạn!" {
		t.Errorf("Response = %q, want %q", resp.Response, "Chào bạn!")
	}
}

func TestHandleChatRejectsEmptyMessage(t *testing.T) {
	s := newTestServer(&scriptedGenerator{})

	w, _ := postChat(t, s, map[string]any{"session_id": "s1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleGetAndDeleteChatSession(t *testing.T) {
	s := newTestServer(&scriptedGenerator{answers: []string{"chat", "Chào bạn!"}})
	postChat(t, s, map[string]any{"message": "xin chào", "session_id": "s1"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/session/s1", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get session status = %d, want 200", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("xin chào")) {
		t.Error("session window does not contain the user turn")
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/chat/session/s1", nil)
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete session status = %d, want 200", w.Code)
	}

	if turns := s.executor.Memory().Turns("s1"); len(turns) != 0 {
		t.Errorf("session still has %d turns after delete", len(turns))
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&scriptedGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}
