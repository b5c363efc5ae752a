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
	"github.com/cyb3r-cych0/resume-parser/internal/extractor"
)

// NERClient 调用外部命名实体识别服务
type NERClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewNERClient 创建NER客户端，URL为空时返回nil表示不启用该能力
func NewNERClient(cfg config.NLPConfig, logger zerolog.Logger) *NERClient {
	if cfg.NERURL == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &NERClient{
		baseURL:    cfg.NERURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// nerRequest NER请求结构
type nerRequest struct {
	Text string `json:"text"`
}

// nerResponse NER响应结构
type nerResponse struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
	Error *apiError `json:"error,omitempty"`
}

// Entities 识别文本中的命名实体
func (c *NERClient) Entities(ctx context.Context, text string) ([]extractor.Entity, error) {
	if text == "" {
		return nil, nil
	}

	jsonData, err := json.Marshal(nerRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("序列化NER请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用NER服务失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取NER响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("NER服务返回非200状态码")
		return nil, fmt.Errorf("NER服务调用失败, 状态码: %d", resp.StatusCode)
	}

	var parsed nerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析NER响应失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("NER服务返回错误: %s", parsed.Error.Message)
	}

	entities := make([]extractor.Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		entities = append(entities, extractor.Entity{Text: e.Text, Label: e.Label})
	}
	return entities, nil
}
