package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phananhtu1998/AI-Agent/internal/model"
)

// TTL của hai lớp cache hội thoại
const (
	exchangeTTL = time.Hour      // từng lượt hội thoại
	summaryTTL  = 24 * time.Hour // tóm tắt phiên
)

// SessionSummary Tóm tắt một phiên hội thoại giữ trong Redis
type SessionSummary struct {
	SessionID          string    `json:"session_id"`
	TotalConversations int64     `json:"total_conversations"`
	LastConversationID string    `json:"last_conversation_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RedisCache Lớp cache Redis cho log hội thoại
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache Tạo cache Redis, ping kiểm tra kết nối trước khi dùng
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Kiểm tra kết nối
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// SaveConversation Ghi một lượt hội thoại vào cache
func (r *RedisCache) SaveConversation(ctx context.Context, conv *model.Conversation) error {
	key := fmt.Sprintf("conversation:%s:%s", conv.SessionID, conv.ConversationID)

	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, exchangeTTL).Err()
}

// GetSessionSummary Lấy tóm tắt phiên từ cache, (nil, nil) khi chưa có
func (r *RedisCache) GetSessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	key := fmt.Sprintf("session_summary:%s", sessionID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // chưa có trong cache
	}
	if err != nil {
		return nil, err
	}

	var summary SessionSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SaveSessionSummary Ghi tóm tắt phiên vào cache
func (r *RedisCache) SaveSessionSummary(ctx context.Context, summary *SessionSummary) error {
	key := fmt.Sprintf("session_summary:%s", summary.SessionID)

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, summaryTTL).Err()
}

// DeleteSession Xóa tóm tắt và mọi lượt hội thoại của phiên khỏi cache
func (r *RedisCache) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, fmt.Sprintf("session_summary:%s", sessionID)).Err(); err != nil {
		return err
	}

	pattern := fmt.Sprintf("conversation:%s:*", sessionID)
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close Đóng kết nối Redis
func (r *RedisCache) Close() error {
	return r.client.Close()
}
