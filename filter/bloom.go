package filter

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/rushteam/sayu/core"
)

// BloomBlacklist 是存放在 Store 中的布隆过滤器黑名单，适合版权下架这类数量很大的作品 ID 集合。
// 误判只会多剔除一件作品，不会漏掉已下架的作品。
//
// 使用示例：
//
//	bl := filter.NewBloomBlacklist(redisStore, "sayu:takedown", 100000, 0.001)
//	_ = bl.Add(ctx, "met-436535")
//	node := &filter.FilterNode{Filters: []filter.Filter{bl}}
type BloomBlacklist struct {
	store             core.Store
	key               string
	capacity          uint
	falsePositiveRate float64

	mu     sync.RWMutex
	cached *bloom.BloomFilter
}

// NewBloomBlacklist 创建布隆黑名单；capacity / falsePositiveRate 用于创建新的过滤器。
func NewBloomBlacklist(s core.Store, key string, capacity uint, falsePositiveRate float64) *BloomBlacklist {
	if capacity == 0 {
		capacity = 10000
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.01
	}
	return &BloomBlacklist{
		store:             s,
		key:               key,
		capacity:          capacity,
		falsePositiveRate: falsePositiveRate,
	}
}

func (b *BloomBlacklist) Name() string {
	return "filter.bloom_blacklist"
}

func (b *BloomBlacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Artwork == nil {
		return true, nil
	}
	bf, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	if bf == nil {
		return false, nil
	}
	return bf.TestString(item.ID), nil
}

// Add 把作品 ID 加入过滤器并写回 Store。
func (b *BloomBlacklist) Add(ctx context.Context, ids ...string) error {
	bf, err := b.load(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if bf == nil {
		bf = bloom.NewWithEstimates(b.capacity, b.falsePositiveRate)
	} else {
		bf = bf.Copy()
	}
	for _, id := range ids {
		bf.AddString(id)
	}

	var buf bytes.Buffer
	if _, err := bf.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize bloom filter: %w", err)
	}
	if err := b.store.Set(ctx, b.key, buf.Bytes()); err != nil {
		return fmt.Errorf("save bloom filter: %w", err)
	}
	b.cached = bf
	return nil
}

// Reset 丢弃本地缓存，下次检查时重新从 Store 读取。
func (b *BloomBlacklist) Reset() {
	b.mu.Lock()
	b.cached = nil
	b.mu.Unlock()
}

// load 返回缓存的过滤器；key 不存在时返回 nil。
func (b *BloomBlacklist) load(ctx context.Context) (*bloom.BloomFilter, error) {
	b.mu.RLock()
	bf := b.cached
	b.mu.RUnlock()
	if bf != nil {
		return bf, nil
	}

	data, err := b.store.Get(ctx, b.key)
	if core.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bloom filter: %w", err)
	}

	bf = &bloom.BloomFilter{}
	if _, err := bf.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("deserialize bloom filter: %w", err)
	}

	b.mu.Lock()
	b.cached = bf
	b.mu.Unlock()
	return bf, nil
}
