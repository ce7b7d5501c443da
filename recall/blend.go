package recall

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// Blend 是一个 Recall Node：并发执行多个召回源，按 Sources 顺序拼接结果。
//
// 排在前面的召回源优先级更高：它的结果整体排在后面召回源之前，
// 因此后续去重时保留的是高优先级来源的那一份以及它的位置。
// 单个召回源出错或超时只会让它贡献空结果，不中断其他召回源。
type Blend struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	Logger        zerolog.Logger
}

func (n *Blend) Name() string        { return "recall.blend" }
func (n *Blend) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Blend) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return []*core.Item{}, nil
	}
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}

	results := make([][]*core.Item, len(n.Sources))
	var eg errgroup.Group
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := src.Recall(recallCtx, rctx)
			if err != nil {
				n.Logger.Warn().Err(err).Str("source", src.Name()).Msg("recall source failed")
				return nil
			}

			// 记录召回来源 label，方便 explain / 观测
			for _, it := range items {
				if it == nil {
					continue
				}
				it.PutLabel("recall_source", utils.Label{Value: src.Name(), Source: "recall"})
				it.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(i), Source: "recall"})
			}
			results[i] = items
			return nil
		})
	}
	_ = eg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]*core.Item, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
