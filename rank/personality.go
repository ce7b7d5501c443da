// Package rank 提供对候选作品打分的排序 Node。
package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/personality"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// PersonalityNode 用人格匹配分给 Item 打分。
//   - 写入 item.Score 与 label：match_score
//   - Sort 为 true 时按分数降序稳定排序；混排链路里保持召回顺序，不要开启
//
// 人格代码优先取 Code，为空时取 rctx.PersonalityCode。
type PersonalityNode struct {
	Code string
	Sort bool
}

func (n *PersonalityNode) Name() string        { return "rank.personality" }
func (n *PersonalityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PersonalityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	code := personality.Normalize(n.Code)
	if code == "" {
		code = rctx.Code()
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		score := personality.ScoreArtwork(code, it.Artwork)
		it.Score = float64(score)
		it.PutLabel("match_score", utils.Label{Value: strconv.Itoa(score), Source: "rank"})
	}

	if n.Sort {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i] == nil {
				return false
			}
			if items[j] == nil {
				return true
			}
			return items[i].Score > items[j].Score
		})
	}
	return items, nil
}
