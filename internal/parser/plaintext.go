package parser

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"
)

// PlainTextExtractor 纯文本文件提取器，只做编码校验
type PlainTextExtractor struct{}

var _ TextExtractor = (*PlainTextExtractor)(nil)

// NewPlainTextExtractor 创建纯文本提取器
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText 返回UTF-8文本内容，剥离BOM，非法编码时报错
func (e *PlainTextExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return "", fmt.Errorf("文本文件不是合法的UTF-8编码 (URI: %s)", uri)
	}
	return string(data), nil
}
