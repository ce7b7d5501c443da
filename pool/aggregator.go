// Package pool 把多个独立加载的作品来源汇总成进程内唯一的作品池，并提供查询。
package pool

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/rushteam/sayu/catalog"
	"github.com/rushteam/sayu/core"
)

const (
	buildKey   = "build"
	refreshKey = "refresh"
)

// Aggregator 汇总多个来源的作品池。
//
// 作品池在首次访问时构建。并发调用方共享同一次进行中的构建（singleflight），
// 构建完成后才写入缓存指针，因此任何时刻最多只有一次惰性构建。
// Refresh 强制重建并原子替换缓存。
type Aggregator struct {
	loaders []catalog.Loader
	policy  catalog.RetryPolicy
	logger  zerolog.Logger

	rng   *rand.Rand
	rngMu sync.Mutex

	snapshot    core.Store
	snapshotKey string
	snapshotTTL time.Duration

	group   singleflight.Group
	current atomic.Pointer[state]
	builds  atomic.Int64
}

// New 创建 Aggregator。每个 loader 都会被包装为带重试与熔断的 catalog.Resilient。
func New(loaders []catalog.Loader, opts ...Option) *Aggregator {
	a := &Aggregator{
		policy: catalog.DefaultRetryPolicy(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = defaultRand()
	}

	a.loaders = make([]catalog.Loader, 0, len(loaders))
	for _, l := range loaders {
		if l == nil {
			continue
		}
		if _, ok := l.(*catalog.Resilient); !ok {
			l = catalog.NewResilient(l, a.policy, a.logger)
		}
		a.loaders = append(a.loaders, l)
	}
	return a
}

// GetAll 返回作品池；首次调用时构建，之后返回缓存。永不返回 nil。
func (a *Aggregator) GetAll(ctx context.Context) *core.Pool {
	return a.state(ctx).pool
}

// Refresh 强制重新加载所有来源并替换缓存。
// 作品池尚未构建时与 GetAll 共用同一次构建。
func (a *Aggregator) Refresh(ctx context.Context) *core.Pool {
	if a.current.Load() == nil {
		return a.build(ctx, buildKey).pool
	}
	return a.build(ctx, refreshKey).pool
}

// Builds 返回已完成的构建次数。
func (a *Aggregator) Builds() int64 {
	return a.builds.Load()
}

func (a *Aggregator) state(ctx context.Context) *state {
	if st := a.current.Load(); st != nil {
		return st
	}
	return a.build(ctx, buildKey)
}

func (a *Aggregator) build(ctx context.Context, key string) *state {
	// 共享的构建不随某个调用方的取消而中断
	buildCtx := context.WithoutCancel(ctx)
	v, _, _ := a.group.Do(key, func() (any, error) {
		if key == buildKey {
			if st := a.current.Load(); st != nil {
				return st, nil
			}
		}
		st := newState(a.construct(buildCtx))
		a.current.Store(st)
		a.builds.Add(1)
		return st, nil
	})
	return v.(*state)
}

// construct 并发加载所有来源；失败的来源记为降级，不影响其他来源。
func (a *Aggregator) construct(ctx context.Context) *core.Pool {
	start := time.Now()
	results := make([][]*core.Artwork, len(a.loaders))
	errs := make([]error, len(a.loaders))

	var eg errgroup.Group
	for i, l := range a.loaders {
		eg.Go(func() error {
			recs, err := l.Load(ctx)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = catalog.NormalizeAll(recs, l.Kind())
			return nil
		})
	}
	_ = eg.Wait()

	p := &core.Pool{
		Artworks: make([]*core.Artwork, 0),
		Metadata: core.PoolMetadata{
			Counts:  make(map[string]int, len(a.loaders)),
			BuiltAt: time.Now(),
		},
	}
	for i, l := range a.loaders {
		if errs[i] != nil {
			p.Metadata.Degraded = append(p.Metadata.Degraded, l.Name())
			a.logger.Warn().Err(errs[i]).Str("source", l.Name()).Msg("source degraded")
			continue
		}
		for _, art := range results[i] {
			if art.Malformed() {
				p.Metadata.Malformed++
			}
		}
		p.Metadata.Counts[l.Name()] += len(results[i])
		p.Artworks = append(p.Artworks, results[i]...)
	}
	p.Metadata.Total = len(p.Artworks)

	allFailed := len(a.loaders) > 0 && len(p.Metadata.Degraded) == len(a.loaders)
	if allFailed {
		if snap, ok := a.loadSnapshot(ctx); ok {
			snap.Metadata.Degraded = p.Metadata.Degraded
			snap.Metadata.FromSnapshot = true
			a.logger.Warn().Int("total", snap.Metadata.Total).Msg("all sources failed, serving snapshot")
			return snap
		}
	} else if p.Metadata.Total > 0 {
		a.saveSnapshot(ctx, p)
	}

	if p.Empty() {
		a.logger.Warn().Err(core.ErrPoolEmpty).Strs("degraded", p.Metadata.Degraded).Msg("artwork pool is empty")
	}
	a.logger.Info().
		Int("total", p.Metadata.Total).
		Int("malformed", p.Metadata.Malformed).
		Strs("degraded", p.Metadata.Degraded).
		Dur("took", time.Since(start)).
		Msg("artwork pool built")
	return p
}
