package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/constants"
	"github.com/cyb3r-cych0/resume-parser/internal/extractor"
	"github.com/cyb3r-cych0/resume-parser/internal/types"
)

const workerSampleResume = `John Smith
john.smith@example.com
+1 (555) 123-4567

SKILLS
Go, Python, Docker`

// TestBuildParseRecord 测试落库记录的组装
func TestBuildParseRecord(t *testing.T) {
	engine := extractor.NewEngine()

	record, err := BuildParseRecord(context.Background(), engine, "rec-1", workerSampleResume, "2.0")
	require.NoError(t, err)

	assert.Equal(t, "rec-1", record.RecordID)
	assert.Equal(t, "2.0", record.ParserVersion)
	assert.Equal(t, constants.StatusCompleted, record.Status)
	assert.Len(t, record.RawTextMD5, 32, "MD5必须是32位十六进制")
	assert.Greater(t, record.OverallScore, 0.0)

	var parsed types.SchemaRecord
	require.NoError(t, json.Unmarshal(record.ParsedJSON, &parsed))
	assert.Equal(t, "John Smith", parsed.Name)
	assert.Equal(t, "john.smith@example.com", parsed.Email)

	var confidence types.ConfidenceBundle
	require.NoError(t, json.Unmarshal(record.ConfidenceJSON, &confidence))
	assert.Equal(t, 100.0, confidence.FieldPercentages["email"])
}

// TestBuildParseRecordDefaultVersion 测试版本号兜底
func TestBuildParseRecordDefaultVersion(t *testing.T) {
	engine := extractor.NewEngine()

	record, err := BuildParseRecord(context.Background(), engine, "rec-2", "plain text", "")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultParserVersion, record.ParserVersion)
}

// TestBuildParseRecordSameTextSameMD5 测试相同文本产生相同指纹
func TestBuildParseRecordSameTextSameMD5(t *testing.T) {
	engine := extractor.NewEngine()

	a, err := BuildParseRecord(context.Background(), engine, "rec-a", workerSampleResume, "1.0")
	require.NoError(t, err)
	b, err := BuildParseRecord(context.Background(), engine, "rec-b", workerSampleResume, "1.0")
	require.NoError(t, err)
	assert.Equal(t, a.RawTextMD5, b.RawTextMD5)
}
