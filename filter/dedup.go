package filter

import (
	"context"
	"strconv"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// Keyed 是可参与去重的记录。
type Keyed interface {
	comparable
	DedupKey() string
}

// DedupeBy 按 DedupKey 去重，保留第一次出现的记录，保持输入顺序。
func DedupeBy[T Keyed](items []T) []T {
	var zero T
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it == zero {
			continue
		}
		key := it.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Dedupe 对作品按 lower(title + "-" + artist) 去重，先出现者胜出。
// 缺失的 title/artist 按空串参与 key 计算，不会报错。
func Dedupe(items []*core.Artwork) []*core.Artwork {
	return DedupeBy(items)
}

// DedupNode 是去重 Node：同一作品在多个召回源中出现时只保留排在前面的那一份。
type DedupNode struct{}

func (n *DedupNode) Name() string        { return "filter.dedup" }
func (n *DedupNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *DedupNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := DedupeBy(items)
	if dropped := len(items) - len(out); dropped > 0 && rctx != nil {
		rctx.PutLabel("dedup_dropped", utils.Label{Value: strconv.Itoa(dropped), Source: n.Name()})
	}
	return out, nil
}
