package filter

import (
	"context"
	"strconv"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// FilterNode 组合多个 Filter，任一返回 true 即剔除该作品。
// 单个 Filter 出错时视为不剔除，出错次数写入请求级 Label filter_errors。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	var filtered, failures int
	for _, item := range items {
		if item == nil {
			continue
		}
		if n.reject(ctx, rctx, item, &failures) {
			filtered++
			continue
		}
		out = append(out, item)
	}

	if rctx != nil {
		if filtered > 0 {
			rctx.PutLabel("filtered_count", utils.Label{Value: strconv.Itoa(filtered), Source: n.Name()})
		}
		if failures > 0 {
			rctx.PutLabel("filter_errors", utils.Label{Value: strconv.Itoa(failures), Source: n.Name()})
		}
	}
	return out, nil
}

func (n *FilterNode) reject(ctx context.Context, rctx *core.RecommendContext, item *core.Item, failures *int) bool {
	for _, f := range n.Filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			*failures++
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
