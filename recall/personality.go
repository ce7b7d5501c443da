package recall

import (
	"context"

	"github.com/rushteam/sayu/core"
)

// DefaultPersonalityRatio 是人格匹配结果在混排中的占比。
const DefaultPersonalityRatio = 0.7

// PersonalityRecall 取人格匹配分最高的 ceil(count * Ratio) 件作品。
type PersonalityRecall struct {
	Pool  Pool
	Ratio float64 // 默认 0.7
}

func (r *PersonalityRecall) Name() string { return "recall.personality" }

func (r *PersonalityRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	ratio := r.Ratio
	if ratio == 0 {
		ratio = DefaultPersonalityRatio
	}
	works := r.Pool.ForPersonality(ctx, rctx.Code())
	return core.NewItems(head(works, Quota(rctx.Count, ratio))), nil
}
