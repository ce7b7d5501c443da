package filter

import (
	"context"
	"slices"
	"strings"

	"github.com/rushteam/sayu/core"
)

// BlacklistFilter 剔除下架作品与被屏蔽艺术家的作品。
// 艺术家按名称大小写不敏感匹配；Store 中的名单每次请求读取，读取失败时只用内存名单。
type BlacklistFilter struct {
	ArtworkIDs []string
	Artists    []string

	// Store / Key 指向一个 JSON 字符串数组形式的下架作品 ID 名单（可选）
	Store BlacklistStore
	Key   string
}

// BlacklistStore 读取下架作品 ID 名单。
type BlacklistStore interface {
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklistFilter 创建黑名单过滤器；storeAdapter 为 nil 时不读取 Store。
func NewBlacklistFilter(artworkIDs, artists []string, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	f := &BlacklistFilter{ArtworkIDs: artworkIDs, Artists: artists, Key: key}
	if storeAdapter != nil {
		f.Store = storeAdapter
	}
	return f
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Artwork == nil {
		return true, nil
	}
	if slices.Contains(f.ArtworkIDs, item.ID) {
		return true, nil
	}
	if slices.ContainsFunc(f.Artists, func(a string) bool {
		return strings.EqualFold(strings.TrimSpace(a), item.Artwork.Artist)
	}) {
		return true, nil
	}
	if f.Store == nil || f.Key == "" {
		return false, nil
	}
	ids, err := f.Store.GetBlacklist(ctx, f.Key)
	if err != nil {
		return false, nil
	}
	return slices.Contains(ids, item.ID), nil
}
