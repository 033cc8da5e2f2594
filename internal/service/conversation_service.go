package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phananhtu1998/AI-Agent/internal/database"
	"github.com/phananhtu1998/AI-Agent/internal/model"
)

// ConversationService Dịch vụ lưu và tra cứu log hội thoại.
// Nguồn sự thật là DB; cache Redis là tùy chọn (nil vẫn chạy bình thường) và
// lỗi cache không bao giờ làm hỏng thao tác chính.
type ConversationService struct {
	db    *gorm.DB
	cache *RedisCache
}

// NewConversationService Tạo dịch vụ log hội thoại trên DB dùng chung
func NewConversationService(cache *RedisCache) *ConversationService {
	return &ConversationService{
		db:    database.GetDB(),
		cache: cache,
	}
}

// NewConversationServiceWithDB Tạo dịch vụ trên DB chỉ định (phục vụ test)
func NewConversationServiceWithDB(db *gorm.DB, cache *RedisCache) *ConversationService {
	return &ConversationService{db: db, cache: cache}
}

// ConversationStats Thống kê tổng hợp log hội thoại
type ConversationStats struct {
	TotalSessions      int64            `json:"total_sessions"`
	TotalConversations int64            `json:"total_conversations"`
	AvgProcessingTime  float64          `json:"avg_processing_time"`
	MostUsedSkill      string           `json:"most_used_skill"`
	DailyConversations []DailyCount     `json:"daily_conversations"`
	SkillBreakdown     map[string]int64 `json:"skill_breakdown"`
}

// DailyCount Số lượt hội thoại theo ngày
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// LogConversation Ghi một lượt hội thoại đã hoàn tất, trả về conversation_id
func (s *ConversationService) LogConversation(ctx context.Context, sessionID, userMessage, agentResponse, skillUsed string, processingTime float64, metadata map[string]any) (string, error) {
	conv := &model.Conversation{
		ConversationID: uuid.NewString(),
		SessionID:      sessionID,
		UserMessage:    userMessage,
		AgentResponse:  agentResponse,
		SkillUsed:      skillUsed,
		ProcessingTime: processingTime,
	}

	if len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return "", fmt.Errorf("failed to encode conversation metadata: %w", err)
		}
		conv.Metadata = string(data)
	}

	if err := s.db.WithContext(ctx).Create(conv).Error; err != nil {
		return "", fmt.Errorf("failed to insert conversation: %w", err)
	}

	// Ghi xuyên qua cache, lỗi chỉ cảnh báo
	if s.cache != nil {
		if err := s.cache.SaveConversation(ctx, conv); err != nil {
			logx.Warn("Failed to cache conversation %s: %v", conv.ConversationID, err)
		}
		s.bumpSessionSummary(ctx, sessionID, conv.ConversationID)
	}

	return conv.ConversationID, nil
}

// GetConversationHistory Lấy lịch sử hội thoại của phiên, mới nhất trước
func (s *ConversationService) GetConversationHistory(ctx context.Context, sessionID string, limit, offset int) ([]model.Conversation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	err := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var conversations []model.Conversation
	err = s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&conversations).Error
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// GetConversationByID Lấy một lượt hội thoại theo conversation_id
func (s *ConversationService) GetConversationByID(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).Where("conversation_id = ?", conversationID).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetSessionSummary Lấy tóm tắt phiên: ưu tiên cache, trượt thì tính lại từ DB
func (s *ConversationService) GetSessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	if s.cache != nil {
		summary, err := s.cache.GetSessionSummary(ctx, sessionID)
		if err != nil {
			logx.Warn("Failed to read session summary from cache, falling back to db: %v", err)
		} else if summary != nil {
			return summary, nil
		}
	}

	summary, err := s.computeSessionSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && summary != nil {
		if err := s.cache.SaveSessionSummary(ctx, summary); err != nil {
			logx.Warn("Failed to cache session summary %s: %v", sessionID, err)
		}
	}
	return summary, nil
}

// DeleteSession Xóa toàn bộ log của phiên khỏi DB và cache
func (s *ConversationService) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.Conversation{})
	if result.Error != nil {
		return 0, result.Error
	}

	if s.cache != nil {
		if err := s.cache.DeleteSession(ctx, sessionID); err != nil {
			logx.Warn("Failed to evict session %s from cache: %v", sessionID, err)
		}
	}
	return result.RowsAffected, nil
}

// GetStats Tính thống kê tổng hợp từ DB
func (s *ConversationService) GetStats(ctx context.Context) (*ConversationStats, error) {
	stats := &ConversationStats{SkillBreakdown: make(map[string]int64)}

	if err := s.db.WithContext(ctx).Model(&model.Conversation{}).Count(&stats.TotalConversations).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Conversation{}).Distinct("session_id").Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := s.db.WithContext(ctx).Model(&model.Conversation{}).Select("AVG(processing_time)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AvgProcessingTime = *avg
	}

	type skillRow struct {
		SkillUsed string
		Count     int64
	}
	var skills []skillRow
	err := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Select("skill_used, COUNT(*) as count").
		Group("skill_used").
		Order("count DESC").
		Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	for i, row := range skills {
		stats.SkillBreakdown[row.SkillUsed] = row.Count
		if i == 0 {
			stats.MostUsedSkill = row.SkillUsed
		}
	}

	type dailyRow struct {
		Date  string
		Count int64
	}
	var daily []dailyRow
	since := time.Now().AddDate(0, 0, -7)
	err = s.db.WithContext(ctx).Model(&model.Conversation{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&daily).Error
	if err != nil {
		return nil, err
	}
	for _, row := range daily {
		stats.DailyConversations = append(stats.DailyConversations, DailyCount(row))
	}

	return stats, nil
}

// computeSessionSummary Tính tóm tắt phiên từ DB, phiên trống trả về nil
func (s *ConversationService) computeSessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}

	var first, last model.Conversation
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").First(&first).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at DESC").First(&last).Error; err != nil {
		return nil, err
	}

	return &SessionSummary{
		SessionID:          sessionID,
		TotalConversations: total,
		LastConversationID: last.ConversationID,
		CreatedAt:          first.CreatedAt,
		UpdatedAt:          last.CreatedAt,
	}, nil
}

// bumpSessionSummary Cập nhật tóm tắt phiên trong cache sau một lượt mới
func (s *ConversationService) bumpSessionSummary(ctx context.Context, sessionID, conversationID string) {
	summary, err := s.cache.GetSessionSummary(ctx, sessionID)
	if err != nil {
		logx.Warn("Failed to read session summary for update: %v", err)
		return
	}

	now := time.Now()
	if summary == nil {
		summary = &SessionSummary{SessionID: sessionID, CreatedAt: now}
	}
	summary.TotalConversations++
	summary.LastConversationID = conversationID
	summary.UpdatedAt = now

	if err := s.cache.SaveSessionSummary(ctx, summary); err != nil {
		logx.Warn("Failed to update session summary %s: %v", sessionID, err)
	}
}
