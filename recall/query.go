package recall

import (
	"context"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pool"
)

// QueryRecall 按维度查询作品池。
// 查询值从 rctx.Params[Param] 读取，Param 为空时使用维度名。
//
// Limit 控制截断：0 取前 rctx.Count 件（Count <= 0 时不截断），< 0 不截断，
// 便于在后续去重之后再截断。
type QueryRecall struct {
	Pool      Pool
	Dimension pool.Dimension
	Param     string
	Limit     int
}

// NewThemeRecall 返回按 rctx.Params["theme"] 查询的召回源。
func NewThemeRecall(p Pool) *QueryRecall {
	return &QueryRecall{Pool: p, Dimension: pool.DimensionTheme}
}

// NewArtistRecall 返回按 rctx.Params["artist"] 查询的召回源。
func NewArtistRecall(p Pool) *QueryRecall {
	return &QueryRecall{Pool: p, Dimension: pool.DimensionArtist}
}

// NewMoodRecall 返回按 rctx.Params["mood"] 查询的召回源。
func NewMoodRecall(p Pool) *QueryRecall {
	return &QueryRecall{Pool: p, Dimension: pool.DimensionMood}
}

func (r *QueryRecall) Name() string { return "recall." + string(r.Dimension) }

func (r *QueryRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	param := r.Param
	if param == "" {
		param = string(r.Dimension)
	}
	works := r.Pool.ByType(ctx, r.Dimension, rctx.Param(param))
	limit := r.Limit
	if limit == 0 {
		limit = rctx.Count
	}
	if limit > 0 {
		works = head(works, limit)
	}
	return core.NewItems(works), nil
}
