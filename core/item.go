package core

import "github.com/rushteam/sayu/pkg/utils"

// Item 是推荐链路中的统一承载结构：作品、分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID      string
	Score   float64
	Artwork *Artwork
	Meta    map[string]any
	Labels  map[string]utils.Label
}

func NewItem(a *Artwork) *Item {
	id := ""
	if a != nil {
		id = a.ID
	}
	return &Item{
		ID:      id,
		Artwork: a,
		Meta:    make(map[string]any),
		Labels:  make(map[string]utils.Label),
	}
}

// NewItems 把一组作品包装成 Item，跳过 nil。
func NewItems(artworks []*Artwork) []*Item {
	out := make([]*Item, 0, len(artworks))
	for _, a := range artworks {
		if a == nil {
			continue
		}
		out = append(out, NewItem(a))
	}
	return out
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// DedupKey 委托给作品；没有作品的 Item 退化为 ID。
func (it *Item) DedupKey() string {
	if it.Artwork == nil {
		return it.ID
	}
	return it.Artwork.DedupKey()
}

func (it *Item) ArtistName() string {
	if it.Artwork == nil {
		return ""
	}
	return it.Artwork.Artist
}
