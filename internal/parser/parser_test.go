package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlainTextExtractor 测试纯文本提取与BOM剥离
func TestPlainTextExtractor(t *testing.T) {
	e := NewPlainTextExtractor()

	text, err := e.ExtractText(context.Background(), []byte("John Smith\njohn@example.com"), "resume.txt")
	require.NoError(t, err)
	assert.Equal(t, "John Smith\njohn@example.com", text)

	text, err = e.ExtractText(context.Background(), []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "bom.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", text, "BOM必须被剥离")
}

// TestPlainTextExtractorInvalidUTF8 测试非法编码报错
func TestPlainTextExtractorInvalidUTF8(t *testing.T) {
	e := NewPlainTextExtractor()
	_, err := e.ExtractText(context.Background(), []byte{0xFF, 0xFE, 0x00}, "bad.txt")
	assert.Error(t, err)
}

// TestPDFExtractorEmptyInput 测试空PDF内容报错
func TestPDFExtractorEmptyInput(t *testing.T) {
	e := NewPDFTextExtractor()
	_, err := e.ExtractText(context.Background(), nil, "empty.pdf")
	assert.Error(t, err)
}

// TestPDFExtractorGarbageInput 测试非PDF内容报错而不崩溃
func TestPDFExtractorGarbageInput(t *testing.T) {
	e := NewPDFTextExtractor()
	_, err := e.ExtractText(context.Background(), []byte("this is not a pdf"), "fake.pdf")
	assert.Error(t, err)
}

// TestRegistryDispatch 测试注册表按扩展名分发
func TestRegistryDispatch(t *testing.T) {
	r := DefaultRegistry()

	assert.True(t, r.Supports("resume.txt"))
	assert.True(t, r.Supports("Resume.PDF"), "扩展名匹配不区分大小写")
	assert.False(t, r.Supports("resume.docx"))

	text, err := r.ExtractText(context.Background(), []byte("hello"), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

// TestRegistryUnsupportedFormat 测试未注册格式返回类型化错误
func TestRegistryUnsupportedFormat(t *testing.T) {
	r := DefaultRegistry()
	_, err := r.ExtractText(context.Background(), []byte("x"), "resume.docx")
	require.Error(t, err)

	var ufe *UnsupportedFormatError
	require.True(t, errors.As(err, &ufe), "必须是UnsupportedFormatError类型")
	assert.Equal(t, ".docx", ufe.Extension)
}
