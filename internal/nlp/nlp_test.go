package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyb3r-cych0/resume-parser/internal/config"
)

// TestNERClientEntities 测试NER客户端的请求与响应解析
func TestNERClientEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "John Smith works at Acme", req.Text)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"entities": []map[string]string{
				{"text": "John Smith", "label": "PERSON"},
				{"text": "Acme", "label": "ORG"},
			},
		})
	}))
	defer srv.Close()

	client := NewNERClient(config.NLPConfig{NERURL: srv.URL, TimeoutSeconds: 2}, zerolog.Nop())
	require.NotNil(t, client)

	entities, err := client.Entities(context.Background(), "John Smith works at Acme")
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "PERSON", entities[0].Label)
	assert.Equal(t, "Acme", entities[1].Text)
}

// TestNERClientServerError 测试服务端错误时返回error
func TestNERClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewNERClient(config.NLPConfig{NERURL: srv.URL}, zerolog.Nop())
	entities, err := client.Entities(context.Background(), "some text")
	assert.Error(t, err)
	assert.Nil(t, entities)
}

// TestNERClientDisabled 测试URL为空时不创建客户端
func TestNERClientDisabled(t *testing.T) {
	assert.Nil(t, NewNERClient(config.NLPConfig{}, zerolog.Nop()))
}

// TestEmbeddingClientEmbed 测试向量化客户端的OpenAI兼容响应解析
func TestEmbeddingClientEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "technical skills", req.Input)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0.1, 0.2, 0.3}, "index": 0},
			},
		})
	}))
	defer srv.Close()

	client := NewEmbeddingClient(config.NLPConfig{EmbeddingURL: srv.URL, TimeoutSeconds: 2}, zerolog.Nop())
	require.NotNil(t, client)

	vec, err := client.Embed(context.Background(), "technical skills")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

// TestEmbeddingClientAPIError 测试200响应中携带API错误时返回error
func TestEmbeddingClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "input too long", "type": "invalid_request"},
		})
	}))
	defer srv.Close()

	client := NewEmbeddingClient(config.NLPConfig{EmbeddingURL: srv.URL}, zerolog.Nop())
	vec, err := client.Embed(context.Background(), "some text")
	assert.Error(t, err)
	assert.Nil(t, vec)
}

// TestEmbeddingClientEmptyText 测试空文本直接返回nil
func TestEmbeddingClientEmptyText(t *testing.T) {
	client := NewEmbeddingClient(config.NLPConfig{EmbeddingURL: "http://unused"}, zerolog.Nop())
	vec, err := client.Embed(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, vec)
}
