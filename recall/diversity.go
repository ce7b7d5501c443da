package recall

import (
	"context"

	"github.com/rushteam/sayu/core"
)

// DefaultDiversityRatio 是随机探索结果在混排中的占比。
const DefaultDiversityRatio = 0.3

// DiversityRecall 从作品池中按人格代码加权抽取 count*2 件，取前 ceil(count * Ratio) 件。
// 它为推荐列表带来人格匹配之外的探索性作品。
type DiversityRecall struct {
	Pool  Pool
	Ratio float64 // 默认 0.3
}

func (r *DiversityRecall) Name() string { return "recall.diversity" }

func (r *DiversityRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	ratio := r.Ratio
	if ratio == 0 {
		ratio = DefaultDiversityRatio
	}
	works := r.Pool.RandomSample(ctx, rctx.Count*2, rctx.Code())
	return core.NewItems(head(works, Quota(rctx.Count, ratio))), nil
}
