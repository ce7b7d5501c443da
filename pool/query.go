package pool

import (
	"context"
	"sort"
	"strings"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/personality"
)

// Dimension 是 ByType 支持的查询维度。
type Dimension string

const (
	DimensionTheme      Dimension = "theme"
	DimensionMedium     Dimension = "medium"
	DimensionComplexity Dimension = "complexity"
	DimensionMood       Dimension = "mood"
	DimensionArtist     Dimension = "artist"
)

// ByType 按维度查询作品，保持作品池顺序。
//   - theme / mood / complexity：大小写不敏感的精确匹配
//   - medium / artist：大小写不敏感的子串匹配（"oil" 命中 "oil on canvas"）
//
// 未知维度返回空列表。
func (a *Aggregator) ByType(ctx context.Context, dim Dimension, value string) []*core.Artwork {
	st := a.state(ctx)
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return []*core.Artwork{}
	}

	switch dim {
	case DimensionTheme:
		return clone(st.byTheme[value])
	case DimensionMood:
		return clone(st.byMood[value])
	case DimensionComplexity:
		return clone(st.byComplexity[core.Complexity(value)])
	case DimensionMedium:
		return st.scan(func(a *core.Artwork) bool {
			return strings.Contains(strings.ToLower(a.Medium), value)
		})
	case DimensionArtist:
		return st.scan(func(a *core.Artwork) bool {
			return strings.Contains(strings.ToLower(a.Artist), value)
		})
	default:
		return []*core.Artwork{}
	}
}

// Search 对 title / artist / medium / themes 做大小写不敏感的子串匹配。
func (a *Aggregator) Search(ctx context.Context, query string) []*core.Artwork {
	st := a.state(ctx)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*core.Artwork{}
	}
	return st.scan(func(a *core.Artwork) bool {
		if strings.Contains(strings.ToLower(a.Title), query) ||
			strings.Contains(strings.ToLower(a.Artist), query) ||
			strings.Contains(strings.ToLower(a.Medium), query) {
			return true
		}
		for _, t := range a.Themes {
			if strings.Contains(strings.ToLower(t), query) {
				return true
			}
		}
		return false
	})
}

// ForPersonality 返回全部作品，按人格匹配分降序排列；同分保持作品池顺序。
func (a *Aggregator) ForPersonality(ctx context.Context, code string) []*core.Artwork {
	st := a.state(ctx)
	type scored struct {
		artwork *core.Artwork
		score   int
	}
	list := make([]scored, len(st.pool.Artworks))
	for i, art := range st.pool.Artworks {
		list[i] = scored{artwork: art, score: personality.ScoreArtwork(code, art)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	out := make([]*core.Artwork, len(list))
	for i, s := range list {
		out[i] = s.artwork
	}
	return out
}

func (st *state) scan(match func(*core.Artwork) bool) []*core.Artwork {
	out := make([]*core.Artwork, 0)
	for _, a := range st.pool.Artworks {
		if match(a) {
			out = append(out, a)
		}
	}
	return out
}

func clone(in []*core.Artwork) []*core.Artwork {
	out := make([]*core.Artwork, len(in))
	copy(out, in)
	return out
}
