// Package sayu 是一个按人格代码推荐艺术作品的引擎。
//
// 设计要点：
// - Pool-first: 多个作品来源并发加载、归一化后汇成进程内唯一的作品池，惰性构建、显式刷新
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Rank → Filter → ReRank → PostProcess）
// - Never fail: 来源失败只会让作品池降级，引擎对调用方只返回（可能为空的）列表
package sayu

import (
	"context"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/engine"
	"github.com/rushteam/sayu/pipeline"
)

// 轻量 facade：便于直接 import "sayu" 使用核心抽象。
type (
	Pipeline       = pipeline.Pipeline
	Node           = pipeline.Node
	Kind           = pipeline.Kind
	Artwork        = core.Artwork
	Recommendation = core.Recommendation
)

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// Recommend 使用进程级默认引擎生成个性化推荐。
func Recommend(ctx context.Context, code string, count int) []Recommendation {
	return engine.Default().PersonalizedRecommendations(ctx, code, count)
}
