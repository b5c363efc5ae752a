package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
)

// EmbeddingClient 调用OpenAI兼容的向量化服务
type EmbeddingClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewEmbeddingClient 创建向量化客户端，URL为空时返回nil表示不启用该能力
func NewEmbeddingClient(cfg config.NLPConfig, logger zerolog.Logger) *EmbeddingClient {
	if cfg.EmbeddingURL == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &EmbeddingClient{
		baseURL:    cfg.EmbeddingURL,
		model:      "text-embedding-v3",
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// embeddingRequest 向量化请求结构 (OpenAI compatible)
type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model,omitempty"`
}

// embeddingResponse 向量化响应结构 (OpenAI compatible)
type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

// apiError API级别错误，可能随200返回
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Embed 将单段文本转换为向量
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, nil
	}

	jsonData, err := json.Marshal(embeddingRequest{Input: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("序列化向量化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用向量化服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取向量化响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("向量化服务返回非200状态码")
		return nil, fmt.Errorf("向量化服务调用失败, 状态码: %d", resp.StatusCode)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析向量化响应失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("向量化服务返回错误: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("向量化响应为空")
	}
	return parsed.Data[0].Embedding, nil
}
