package engine

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/filter"
	"github.com/rushteam/sayu/pipeline"
)

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 设置日志。
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "engine").Logger()
	}
}

// WithRand 注入注解阶段（匹配度抖动、短评模板）使用的随机源。
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed 使用固定种子的随机源。
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d)))
}

// WithDefaults 替换默认参数（默认条数、艺术家上限、混排比例）。
func WithDefaults(d core.EngineDefaults) Option {
	return func(e *Engine) {
		if d != nil {
			e.defaults = d
		}
	}
}

// WithMaxPerArtist 设置同一艺术家最多出现次数：0 使用默认值，< 0 关闭限流。
func WithMaxPerArtist(n int) Option {
	return func(e *Engine) {
		e.maxPerArtist = n
	}
}

// WithPersonalityRatio 设置人格定向候选的占比，(0,1] 之外的值被忽略。
func WithPersonalityRatio(r float64) Option {
	return func(e *Engine) {
		if r > 0 && r <= 1 {
			e.ratio = r
		}
	}
}

// WithExclude 追加剔除规则，在去重之后、多样性限流之前执行。
func WithExclude(filters ...filter.Filter) Option {
	return func(e *Engine) {
		e.excludes = append(e.excludes, filters...)
	}
}

// WithPipeline 用自定义 Pipeline 替换个性化推荐链路。
// Pipeline 最后需要包含 postprocess.AnnotateNode，否则不会产出推荐条目。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(e *Engine) {
		e.personalized = p
	}
}
