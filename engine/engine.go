// Package engine 编排作品池、人格打分、去重与多样性过滤，产出带注解的推荐列表。
//
// 所有操作都不向调用方返回错误：来源失败、作品池为空、规则出错都只会让结果变少，
// 最坏情况是空列表。
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/filter"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pool"
	"github.com/rushteam/sayu/postprocess"
	"github.com/rushteam/sayu/rank"
	"github.com/rushteam/sayu/recall"
	"github.com/rushteam/sayu/rerank"
)

// 请求场景，写入 rctx.Scene。
const (
	ScenePersonalized = "personalized"
	SceneTheme        = "theme"
	SceneArtist       = "artist"
	SceneMood         = "mood"
)

// Engine 是推荐引擎。可并发使用。
type Engine struct {
	pool      *pool.Aggregator
	annotator *postprocess.Annotator
	logger    zerolog.Logger
	rng       *rand.Rand

	defaults     core.EngineDefaults
	maxPerArtist int
	ratio        float64
	excludes     []filter.Filter

	personalized *pipeline.Pipeline
	queries      map[pool.Dimension]*pipeline.Pipeline
}

// New 创建 Engine；agg 为 nil 时使用没有任何来源的空作品池。
func New(agg *pool.Aggregator, opts ...Option) *Engine {
	if agg == nil {
		agg = pool.New(nil)
	}
	e := &Engine{
		pool:     agg,
		logger:   zerolog.Nop(),
		defaults: &core.DefaultEngineConfig{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ratio == 0 {
		e.ratio = e.defaults.PersonalityRatio()
	}
	if e.maxPerArtist == 0 {
		e.maxPerArtist = e.defaults.DefaultMaxPerArtist()
	}
	e.annotator = postprocess.NewAnnotator(e.rng)

	if e.personalized == nil {
		e.personalized = e.personalizedPipeline()
	}
	if e.personalized.Logger == nil {
		e.personalized.Logger = &e.logger
	}
	e.queries = map[pool.Dimension]*pipeline.Pipeline{
		pool.DimensionTheme:  e.queryPipeline(recall.NewThemeRecall(agg)),
		pool.DimensionArtist: e.queryPipeline(recall.NewArtistRecall(agg)),
		pool.DimensionMood:   e.queryPipeline(recall.NewMoodRecall(agg)),
	}
	return e
}

// personalizedPipeline: 人格定向 + 随机探索混排 → 打分 → 去重 → 规则剔除 → 艺术家限流 → 截断 → 注解。
func (e *Engine) personalizedPipeline() *pipeline.Pipeline {
	sources := []recall.Source{&recall.PersonalityRecall{Pool: e.pool, Ratio: e.ratio}}
	if rest := 1 - e.ratio; rest > 0 {
		sources = append(sources, &recall.DiversityRecall{Pool: e.pool, Ratio: rest})
	}
	nodes := []pipeline.Node{
		&recall.Blend{Sources: sources, Logger: e.logger},
		&rank.PersonalityNode{},
		&filter.DedupNode{},
	}
	if len(e.excludes) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.excludes})
	}
	if e.maxPerArtist > 0 {
		nodes = append(nodes, &rerank.ArtistDiversity{Max: e.maxPerArtist})
	}
	nodes = append(nodes,
		&rerank.TopNNode{},
		&postprocess.AnnotateNode{Annotator: e.annotator},
	)
	return &pipeline.Pipeline{Nodes: nodes, Logger: &e.logger}
}

// queryPipeline: 查询 → 去重 → 截断 → 注解，不做人格混排与多样性限流。
func (e *Engine) queryPipeline(src *recall.QueryRecall) *pipeline.Pipeline {
	src.Limit = -1
	nodes := []pipeline.Node{
		&recall.Blend{Sources: []recall.Source{src}, Logger: e.logger},
		&rank.PersonalityNode{},
		&filter.DedupNode{},
	}
	if len(e.excludes) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.excludes})
	}
	nodes = append(nodes,
		&rerank.TopNNode{},
		&postprocess.AnnotateNode{Annotator: e.annotator},
	)
	return &pipeline.Pipeline{Nodes: nodes, Logger: &e.logger}
}

// PersonalizedRecommendations 为人格代码生成 count 条推荐（count <= 0 时取默认 12）。
//
// 人格匹配结果取 ceil(count*0.7)，按该代码加权随机抽样的探索结果取 ceil(count*0.3)，
// 人格结果在前；去重时保留排在前面的那一份。结果长度 <= count，且没有重复的 (title, artist)。
// 任意字符串都是合法代码，未知代码按中性分处理。
//
// 艺术家限流默认开启（每位艺术家最多 2 件），候选中不同艺术家不够时结果会少于 count；
// 需要严格凑满 count 时用 WithMaxPerArtist(-1) 关闭限流。
func (e *Engine) PersonalizedRecommendations(ctx context.Context, code string, count int) []core.Recommendation {
	rctx := &core.RecommendContext{
		Scene:           ScenePersonalized,
		PersonalityCode: code,
		Count:           e.count(count),
		MaxPerArtist:    e.maxPerArtist,
	}
	return e.run(ctx, e.personalized, rctx)
}

// ThemeRecommendations 返回带有该主题的作品。
func (e *Engine) ThemeRecommendations(ctx context.Context, theme string, count int) []core.Recommendation {
	return e.query(ctx, SceneTheme, pool.DimensionTheme, theme, count)
}

// ArtistRecommendations 返回艺术家名包含 name 的作品。
func (e *Engine) ArtistRecommendations(ctx context.Context, name string, count int) []core.Recommendation {
	return e.query(ctx, SceneArtist, pool.DimensionArtist, name, count)
}

// MoodRecommendations 返回带有该情绪标签的作品。
func (e *Engine) MoodRecommendations(ctx context.Context, mood string, count int) []core.Recommendation {
	return e.query(ctx, SceneMood, pool.DimensionMood, mood, count)
}

func (e *Engine) query(ctx context.Context, scene string, dim pool.Dimension, value string, count int) []core.Recommendation {
	rctx := &core.RecommendContext{
		Scene:  scene,
		Count:  e.count(count),
		Params: map[string]any{string(dim): value},
	}
	return e.run(ctx, e.queries[dim], rctx)
}

func (e *Engine) run(ctx context.Context, p *pipeline.Pipeline, rctx *core.RecommendContext) []core.Recommendation {
	if e.pool.GetAll(ctx).Empty() {
		e.logger.Debug().Str("scene", rctx.Scene).Msg("artwork pool is empty")
		return []core.Recommendation{}
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		e.logger.Warn().Err(err).Str("scene", rctx.Scene).Msg("recommendation pipeline failed")
		return []core.Recommendation{}
	}

	recs := postprocess.Recommendations(items)
	if len(recs) > rctx.Count {
		recs = recs[:rctx.Count]
	}
	e.logger.Debug().
		Str("scene", rctx.Scene).
		Str("code", rctx.Code()).
		Int("count", rctx.Count).
		Int("returned", len(recs)).
		Msg("recommendations served")
	return recs
}

func (e *Engine) count(n int) int {
	if n > 0 {
		return n
	}
	return e.defaults.DefaultCount()
}

// Pool 返回当前作品池（首次调用时构建）。
func (e *Engine) Pool(ctx context.Context) *core.Pool {
	return e.pool.GetAll(ctx)
}

// Refresh 重新加载所有来源并替换作品池。
func (e *Engine) Refresh(ctx context.Context) *core.Pool {
	p := e.pool.Refresh(ctx)
	e.logger.Info().Int("total", p.Metadata.Total).Strs("degraded", p.Metadata.Degraded).Msg("artwork pool refreshed")
	return p
}

// Aggregator 返回底层作品池，用于 Search / RandomSample 等直接查询。
func (e *Engine) Aggregator() *pool.Aggregator {
	return e.pool
}
