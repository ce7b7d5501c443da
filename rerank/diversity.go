// Package rerank 在召回/排序结果上做多样性约束与截断。
package rerank

import (
	"context"
	"strconv"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// DefaultMaxPerArtist 是同一艺术家默认最多出现的次数。
const DefaultMaxPerArtist = 2

// ArtistKeyed 是带艺术家字段的记录（作品、Item、推荐结果）。
type ArtistKeyed interface {
	ArtistName() string
}

// LimitPerArtist 单次从左到右扫描：某艺术家已保留数 < max 时保留并计数，否则丢弃。
// 保留项的相对顺序不变；max <= 0 返回空列表。
func LimitPerArtist[T ArtistKeyed](items []T, max int) []T {
	if max <= 0 {
		return []T{}
	}
	counts := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		artist := it.ArtistName()
		if counts[artist] >= max {
			continue
		}
		counts[artist]++
		out = append(out, it)
	}
	return out
}

// ArtistDiversity 是按艺术家限流的 ReRank Node。
// 上限取值顺序：Max > rctx.MaxPerArtist > DefaultMaxPerArtist。
type ArtistDiversity struct {
	Max int
}

func (n *ArtistDiversity) Name() string        { return "rerank.artist_diversity" }
func (n *ArtistDiversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *ArtistDiversity) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.Max
	if limit <= 0 && rctx != nil {
		limit = rctx.MaxPerArtist
	}
	if limit <= 0 {
		limit = DefaultMaxPerArtist
	}

	kept := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			kept = append(kept, it)
		}
	}
	out := LimitPerArtist(kept, limit)
	if dropped := len(kept) - len(out); dropped > 0 && rctx != nil {
		rctx.PutLabel("diversity_dropped", utils.Label{Value: strconv.Itoa(dropped), Source: n.Name()})
	}
	return out, nil
}
