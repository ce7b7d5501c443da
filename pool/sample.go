package pool

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/personality"
)

// RandomSample 不放回地随机抽取 n 件作品（作品池不足时返回全部）。
//
// biasCode 为已知人格代码时改用加权抽样（Efraimidis-Spirakis），
// 权重为 (score+1)^2，高匹配分作品被抽中的概率严格高于均匀抽样。
// 未知或空的 biasCode 退化为均匀抽样。
func (a *Aggregator) RandomSample(ctx context.Context, n int, biasCode string) []*core.Artwork {
	st := a.state(ctx)
	all := st.pool.Artworks
	if n <= 0 || len(all) == 0 {
		return []*core.Artwork{}
	}
	n = min(n, len(all))

	if biasCode != "" && personality.Known(biasCode) {
		return a.weightedSample(all, n, biasCode)
	}
	return a.uniformSample(all, n)
}

// uniformSample 部分 Fisher-Yates 洗牌。
func (a *Aggregator) uniformSample(all []*core.Artwork, n int) []*core.Artwork {
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}

	a.rngMu.Lock()
	for i := 0; i < n; i++ {
		j := i + a.rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	a.rngMu.Unlock()

	out := make([]*core.Artwork, n)
	for i := 0; i < n; i++ {
		out[i] = all[idx[i]]
	}
	return out
}

func (a *Aggregator) weightedSample(all []*core.Artwork, n int, code string) []*core.Artwork {
	type keyed struct {
		artwork *core.Artwork
		key     float64
	}
	list := make([]keyed, len(all))

	a.rngMu.Lock()
	for i, art := range all {
		w := sampleWeight(personality.ScoreArtwork(code, art))
		// key = u^(1/w)，取 key 最大的 n 个
		u := a.rng.Float64()
		list[i] = keyed{artwork: art, key: math.Pow(u, 1/w)}
	}
	a.rngMu.Unlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].key > list[j].key
	})
	out := make([]*core.Artwork, n)
	for i := 0; i < n; i++ {
		out[i] = list[i].artwork
	}
	return out
}

func sampleWeight(score int) float64 {
	w := float64(score + 1)
	return w * w
}
