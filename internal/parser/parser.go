package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// TextExtractor 将某种文件格式的原始内容提取为纯文本
type TextExtractor interface {
	// ExtractText 从字节数组提取文本，uri仅用于日志与错误信息
	ExtractText(ctx context.Context, data []byte, uri string) (string, error)
}

// UnsupportedFormatError 文件格式不被任何提取器支持
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的文件格式: %q", e.Extension)
}

// Registry 按文件扩展名分发到对应的文本提取器
type Registry struct {
	extractors map[string]TextExtractor
}

// NewRegistry 创建空的提取器注册表
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]TextExtractor)}
}

// Register 注册一个扩展名到提取器的映射，扩展名带点且不区分大小写
func (r *Registry) Register(extension string, extractor TextExtractor) {
	r.extractors[strings.ToLower(extension)] = extractor
}

// Supports 判断指定文件名的格式是否受支持
func (r *Registry) Supports(filename string) bool {
	_, ok := r.extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ExtractText 按文件名的扩展名选择提取器并提取文本
func (r *Registry) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	extractor, ok := r.extractors[ext]
	if !ok {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	return extractor.ExtractText(ctx, data, filename)
}

// DefaultRegistry 返回注册了内置提取器的注册表
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".pdf", NewPDFTextExtractor())
	r.Register(".txt", NewPlainTextExtractor())
	return r
}
