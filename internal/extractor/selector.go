package extractor

import "context"

// SelectBest 为一个字段从候选中选出得分最高者。
// 使用严格大于比较：得分相同保留先出现的候选，保证重复运行结果稳定可复现。
// 没有候选或全部得分为0时返回 (nil, 0)，由调用方解析为模式默认值。
func (s *Scorer) SelectBest(ctx context.Context, field Field, candidates []Candidate) (*Candidate, float64) {
	var best *Candidate
	bestScore := 0.0
	for i := range candidates {
		if score := s.Score(ctx, candidates[i], field); score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}
	return best, bestScore
}
