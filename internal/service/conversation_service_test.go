package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phananhtu1998/AI-Agent/internal/model"
)

func newTestService(t *testing.T) *ConversationService {
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
	return NewConversationServiceWithDB(db, nil)
}

func TestLogConversationAssignsID(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	id, err := s.LogConversation(ctx, "s1", "Thời tiết Hà Nội?", "Thời tiết tại Hà Nội: Nhiệt độ hiện tại: 28°C — Trời quang.", "weather", 0.42, map[string]any{"source": "api"})
	if err != nil {
		t.Fatalf("LogConversation failed: %v", err)
	}
	if id == "" {
		t.Fatal("LogConversation returned empty conversation id")
	}

	conv, err := s.GetConversationByID(ctx, id)
	if err != nil {
		t.Fatalf("GetConversationByID failed: %v", err)
	}
	if conv.SessionID != "s1" || conv.SkillUsed != "weather" {
		t.Errorf("stored conversation = %+v", conv)
	}
	if conv.Metadata == "" {
		t.Error("metadata was not stored")
	}
}

func TestGetConversationHistoryPagination(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.LogConversation(ctx, "s1", fmt.Sprintf("hỏi %d", i), fmt.Sprintf("đáp %d", i), "chat", 0.1, nil); err != nil {
			t.Fatalf("LogConversation failed: %v", err)
		}
	}
	if _, err := s.LogConversation(ctx, "s2", "khác phiên", "đáp", "chat", 0.1, nil); err != nil {
		t.Fatalf("LogConversation failed: %v", err)
	}

	conversations, total, err := s.GetConversationHistory(ctx, "s1", 3, 0)
	if err != nil {
		t.Fatalf("GetConversationHistory failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(conversations) != 3 {
		t.Errorf("page size = %d, want 3", len(conversations))
	}
	for _, c := range conversations {
		if c.SessionID != "s1" {
			t.Errorf("history leaked conversation from session %s", c.SessionID)
		}
	}
}

func TestGetSessionSummaryFromDB(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	var lastID string
	for i := 0; i < 3; i++ {
		id, err := s.LogConversation(ctx, "s1", fmt.Sprintf("hỏi %d", i), "đáp", "chat", 0.1, nil)
		if err != nil {
			t.Fatalf("LogConversation failed: %v", err)
		}
		lastID = id
	}

	summary, err := s.GetSessionSummary(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSessionSummary failed: %v", err)
	}
	if summary == nil {
		t.Fatal("summary is nil for a session with history")
	}
	if summary.TotalConversations != 3 {
		t.Errorf("TotalConversations = %d, want 3", summary.TotalConversations)
	}
	if summary.LastConversationID != lastID {
		t.Errorf("LastConversationID = %s, want %s", summary.LastConversationID, lastID)
	}
}

func TestGetSessionSummaryEmptySession(t *testing.T) {
	s := newTestService(t)

	summary, err := s.GetSessionSummary(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetSessionSummary failed: %v", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil for unknown session", summary)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := s.LogConversation(ctx, "s1", "hỏi", "đáp", "chat", 0.1, nil); err != nil {
			t.Fatalf("LogConversation failed: %v", err)
		}
	}

	deleted, err := s.DeleteSession(ctx, "s1")
	if err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	_, total, err := s.GetConversationHistory(ctx, "s1", 10, 0)
	if err != nil {
		t.Fatalf("GetConversationHistory failed: %v", err)
	}
	if total != 0 {
		t.Errorf("history still has %d rows after delete", total)
	}
}

func TestGetStats(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.LogConversation(ctx, "s1", "hỏi", "đáp", "weather", 0.2, nil); err != nil {
			t.Fatalf("LogConversation failed: %v", err)
		}
	}
	if _, err := s.LogConversation(ctx, "s2", "hỏi", "đáp", "chat", 0.4, nil); err != nil {
		t.Fatalf("LogConversation failed: %v", err)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalConversations != 4 {
		t.Errorf("TotalConversations = %d, want 4", stats.TotalConversations)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("TotalSessions = %d, want 2", stats.TotalSessions)
	}
	if stats.MostUsedSkill != "weather" {
		t.Errorf("MostUsedSkill = %s, want weather", stats.MostUsedSkill)
	}
	if stats.SkillBreakdown["weather"] != 3 || stats.SkillBreakdown["chat"] != 1 {
		t.Errorf("SkillBreakdown = %v", stats.SkillBreakdown)
	}
	if len(stats.DailyConversations) == 0 {
		t.Error("DailyConversations is empty")
	}
}
