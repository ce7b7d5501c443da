package pool

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/catalog"
	"github.com/rushteam/sayu/core"
)

// Option 配置 Aggregator。
type Option func(*Aggregator)

// WithLogger 设置日志。
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger.With().Str("component", "pool").Logger()
	}
}

// WithRand 注入随机源，测试中传入固定种子以获得可复现结果。
func WithRand(r *rand.Rand) Option {
	return func(a *Aggregator) {
		if r != nil {
			a.rng = r
		}
	}
}

// WithSeed 使用固定种子的随机源。
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithRetryPolicy 设置来源加载的重试/熔断策略。
func WithRetryPolicy(p catalog.RetryPolicy) Option {
	return func(a *Aggregator) {
		a.policy = p
	}
}

// WithSnapshot 构建成功后把作品池写入 store；所有来源都失败时从快照恢复。
// ttl 为 0 表示不过期。
func WithSnapshot(s core.Store, key string, ttl time.Duration) Option {
	return func(a *Aggregator) {
		a.snapshot = s
		a.snapshotKey = key
		a.snapshotTTL = ttl
	}
}

func defaultRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
