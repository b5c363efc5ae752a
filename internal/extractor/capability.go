package extractor

import (
	"context"
	"math"
)

// Entity 表示NER后端识别出的一个命名实体
type Entity struct {
	Text  string // 实体文本
	Label string // 实体标签：PERSON / ORG / GPE 等
}

// NERProvider 可选的命名实体识别能力。
// 实现必须是只读且并发安全的；调用失败只会降低评分精度，不影响提取流程。
type NERProvider interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// Embedder 可选的文本向量化能力。
// 缺失该能力是完全受支持的配置，只影响非规范标题的召回与评分精度。
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// cosineSimilarity 计算两个向量的余弦相似度，维度不一致或零向量时返回0
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA)*math.Sqrt(normB) + 1e-12
	return dot / denom
}
