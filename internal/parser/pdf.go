package parser

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/cyb3r-cych0/resume-parser/internal/logger"
)

// PDFTextExtractor 基于纯Go的PDF文本提取器
type PDFTextExtractor struct{}

var _ TextExtractor = (*PDFTextExtractor)(nil)

// NewPDFTextExtractor 创建PDF文本提取器
func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

// ExtractText 从PDF字节数组提取纯文本。逐页提取，
// 单页失败时跳过该页继续，全部失败才返回错误。
func (e *PDFTextExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	startTime := time.Now()

	if len(data) == 0 {
		return "", fmt.Errorf("PDF内容为空 (URI: %s)", uri)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开PDF失败 (URI: %s): %w", uri, err)
	}

	var sb strings.Builder
	total := reader.NumPage()
	failed := 0
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			failed++
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn().Err(err).Int("page", i).Str("uri", uri).Msg("提取PDF页面文本失败，跳过该页")
			failed++
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if total > 0 && failed == total {
		return "", fmt.Errorf("PDF所有页面提取均失败 (URI: %s)", uri)
	}

	logger.Debug().
		Str("uri", uri).
		Int("pages", total).
		Int("failed_pages", failed).
		Dur("elapsed", time.Since(startTime)).
		Msg("PDF文本提取完成")
	return sb.String(), nil
}
