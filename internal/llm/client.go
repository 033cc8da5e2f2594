package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"strings"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	openai "github.com/sashabaranov/go-openai"
)

// ErrNotConfigured Trả về khi client được gọi mà chưa cấu hình API key
var ErrNotConfigured = errors.New("llm: client is not configured")

// Generator Hợp đồng với mô hình ngôn ngữ: một prompt vào, một câu trả lời ra
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config Cấu hình LLM client
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // giây
}

// Client LLM client qua endpoint tương thích OpenAI (mặc định là Gemini)
type Client struct {
	config *Config
	client *openai.Client
}

// NewClient Tạo LLM client. Bị tắt trong cấu hình hoặc thiếu API key thì
// client vẫn được tạo nhưng mọi lời gọi Generate trả về ErrNotConfigured,
// tính năng liên quan tự xuống cấp.
func NewClient(config *Config) *Client {
	c := &Client{config: config}

	if !config.Enabled {
		logx.Info("LLM is disabled in config, generation is unavailable")
		return c
	}
	if config.APIKey == "" {
		logx.Warn("LLM API key is empty, generation is disabled")
		return c
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		// Dùng nguyên BaseURL được cấu hình, không tự thêm /v1
		// vì mỗi nhà cung cấp có định dạng đường dẫn khác nhau
		clientConfig.BaseURL = config.BaseURL
		logx.Debug("LLM client BaseURL: %s", config.BaseURL)
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// Tắt HTTP/2, buộc dùng HTTP/1.1 để tránh lỗi INTERNAL_ERROR
	// với một số gateway tương thích OpenAI
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSNextProto:        make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
	}

	clientConfig.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}

	c.client = openai.NewClientWithConfig(clientConfig)
	logx.Info("LLM client initialized, model %s", config.Model)

	return c
}

// Configured Cho biết client đã sẵn sàng gọi mô hình hay chưa
func (c *Client) Configured() bool {
	return c != nil && c.client != nil
}

// Generate Gọi mô hình với một prompt, trả về nội dung văn bản của lựa chọn đầu
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logx.Error("Failed to create chat completion %v", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("llm: no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
