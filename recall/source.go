// Package recall 从作品池中取候选作品，并把多个召回源按优先级混排。
package recall

import (
	"context"
	"math"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pool"
)

// Source 表示一个可复用的召回源（人格匹配/随机探索/主题/艺术家/情绪）。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Pool 是召回源依赖的作品池查询能力，*pool.Aggregator 实现了它。
type Pool interface {
	ForPersonality(ctx context.Context, code string) []*core.Artwork
	RandomSample(ctx context.Context, n int, biasCode string) []*core.Artwork
	ByType(ctx context.Context, dim pool.Dimension, value string) []*core.Artwork
}

var _ Pool = (*pool.Aggregator)(nil)

// Quota 返回 ceil(count * ratio)，ratio 非法时返回 0。
// 减去 quotaEpsilon 吸收浮点误差，保证 10*0.7 得到 7 而不是 8。
func Quota(count int, ratio float64) int {
	if count <= 0 || ratio <= 0 || math.IsNaN(ratio) {
		return 0
	}
	return int(math.Ceil(float64(count)*ratio - quotaEpsilon))
}

const quotaEpsilon = 1e-9

func head(list []*core.Artwork, n int) []*core.Artwork {
	if n < 0 {
		n = 0
	}
	if len(list) > n {
		return list[:n]
	}
	return list
}
