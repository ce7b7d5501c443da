package rerank

import (
	"context"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
)

// TopNNode 截取前 N 个 Item，通常放在多样性重排之后、注解之前。
//
// N <= 0 时使用 rctx.Count；两者都 <= 0 则不截断。
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Blend{...},
//	        &filter.DedupNode{},
//	        &rerank.ArtistDiversity{},
//	        &rerank.TopNNode{},
//	    },
//	}
type TopNNode struct {
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Count
	}
	if limit <= 0 || len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
