package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rushteam/sayu/core"
)

// RetryPolicy 是来源加载的重试与熔断参数。
type RetryPolicy struct {
	// MaxRetries 首次失败后的最大重试次数
	MaxRetries int

	// BaseDelay 首次重试前的等待时间，之后每次翻倍
	BaseDelay time.Duration

	// MaxDelay 单次等待上限
	MaxDelay time.Duration

	// AttemptTimeout 单次加载超时，0 表示不限制
	AttemptTimeout time.Duration

	// FailureThreshold 连续失败多少次后熔断
	FailureThreshold uint32

	// OpenTimeout 熔断后多久进入半开状态
	OpenTimeout time.Duration
}

// DefaultRetryPolicy 最多重试 2 次，指数退避。
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:       2,
		BaseDelay:        100 * time.Millisecond,
		MaxDelay:         2 * time.Second,
		AttemptTimeout:   10 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Resilient 给任意 Loader 加上重试退避与熔断。
// 熔断器在多次刷新之间保持状态，持续失败的来源会被快速跳过，不拖慢其他来源。
type Resilient struct {
	Loader
	policy  RetryPolicy
	breaker *gobreaker.CircuitBreaker[[]Record]
	logger  zerolog.Logger
}

// NewResilient 包装 loader；policy 的零值字段使用默认值。
func NewResilient(loader Loader, policy RetryPolicy, logger zerolog.Logger) *Resilient {
	def := DefaultRetryPolicy()
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = def.BaseDelay
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = def.MaxDelay
	}
	if policy.FailureThreshold == 0 {
		policy.FailureThreshold = def.FailureThreshold
	}
	if policy.OpenTimeout <= 0 {
		policy.OpenTimeout = def.OpenTimeout
	}

	r := &Resilient{
		Loader: loader,
		policy: policy,
		logger: logger.With().Str("source", loader.Name()).Logger(),
	}
	r.breaker = gobreaker.NewCircuitBreaker[[]Record](gobreaker.Settings{
		Name:        loader.Name(),
		MaxRequests: 1,
		Timeout:     policy.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= policy.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			r.logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("source circuit breaker state changed")
		},
	})
	return r
}

// State 返回熔断器当前状态。
func (r *Resilient) State() gobreaker.State {
	return r.breaker.State()
}

// Load 依次尝试加载，失败后退避重试；熔断打开时立即放弃。
func (r *Resilient) Load(ctx context.Context) ([]Record, error) {
	var lastErr error
	delay := r.policy.BaseDelay

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
			delay = min(delay*2, r.policy.MaxDelay)
		}

		recs, err := r.breaker.Execute(func() ([]Record, error) {
			return r.attempt(ctx)
		})
		if err == nil {
			if attempt > 0 {
				r.logger.Info().Int("attempt", attempt+1).Msg("source loaded after retry")
			}
			return recs, nil
		}

		lastErr = err
		r.logger.Debug().Err(err).Int("attempt", attempt+1).Msg("source load failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
	}

	return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeUnavailable,
		fmt.Sprintf("catalog: source %s unavailable", r.Name()), lastErr)
}

func (r *Resilient) attempt(ctx context.Context) ([]Record, error) {
	if r.policy.AttemptTimeout <= 0 {
		return r.Loader.Load(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.policy.AttemptTimeout)
	defer cancel()
	return r.Loader.Load(attemptCtx)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
