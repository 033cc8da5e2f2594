package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phananhtu1998/AI-Agent/internal/agent"
	"github.com/phananhtu1998/AI-Agent/internal/config"
	"github.com/phananhtu1998/AI-Agent/internal/intent"
	"github.com/phananhtu1998/AI-Agent/internal/location"
	"github.com/phananhtu1998/AI-Agent/internal/memory"
	"github.com/phananhtu1998/AI-Agent/internal/model"
	"github.com/phananhtu1998/AI-Agent/internal/service"
	"github.com/phananhtu1998/AI-Agent/internal/skill"
)

func newTestServerWithLog(t *testing.T) (*HTTPGinServer, *service.ConversationService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&model.Conversation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	conversations := service.NewConversationServiceWithDB(db, nil)

	gen := &scriptedGenerator{}
	mem := memory.NewStore(memory.DefaultWindowPairs)
	resolver := location.NewResolver(location.NewCache(time.Hour), stubGeocoder{}, nil, "VN", "")
	executor := agent.NewExecutor(
		intent.NewClassifier(gen, mem),
		mem,
		skill.NewWeatherSkill(resolver, stubWeather{}),
		skill.NewChatSkill(gen, mem),
	)

	cfg := &config.Config{}
	return NewHTTPGinServer(cfg, executor, conversations), conversations
}

func TestHandleConversationHistoryPagination(t *testing.T) {
	s, conversations := newTestServerWithLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := conversations.LogConversation(ctx, "s1", fmt.Sprintf("hỏi %d", i), "đáp", "chat", 0.1, nil); err != nil {
			t.Fatalf("LogConversation failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversation/history/s1?limit=2&offset=2", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Items    []model.Conversation `json:"items"`
			PageInfo model.PageInfo       `json:"page_info"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data.Items) != 2 {
		t.Errorf("page has %d items, want 2", len(resp.Data.Items))
	}
	if resp.Data.PageInfo.Total != 5 {
		t.Errorf("Total = %d, want 5", resp.Data.PageInfo.Total)
	}
	if resp.Data.PageInfo.TotalPage != 3 {
		t.Errorf("TotalPage = %d, want 3", resp.Data.PageInfo.TotalPage)
	}
	if resp.Data.PageInfo.PageNum != 2 {
		t.Errorf("PageNum = %d, want 2", resp.Data.PageInfo.PageNum)
	}
	if resp.Data.PageInfo.PageSize != 2 {
		t.Errorf("PageSize = %d, want 2", resp.Data.PageInfo.PageSize)
	}
}

func TestHandleSessionSummaryNotFound(t *testing.T) {
	s, _ := newTestServerWithLog(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversation/summary/missing", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
