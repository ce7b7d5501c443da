package filter

import (
	"context"

	"github.com/rushteam/sayu/core"
)

// Filter 判断一件作品是否需要从推荐结果中剔除，返回 true 表示剔除。
type Filter interface {
	Name() string
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

var (
	_ Filter = (*BlacklistFilter)(nil)
	_ Filter = (*BloomBlacklist)(nil)
	_ Filter = (*ExprFilter)(nil)
)
