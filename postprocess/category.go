package postprocess

import (
	"strings"

	"github.com/rushteam/sayu/core"
)

// Category 是展示层使用的作品分类。新增分类时需同时补充 String 与映射表。
type Category int

const (
	CategoryPainting Category = iota
	CategoryDrawing
	CategoryPrint
	CategorySculpture
	CategoryPhotography
	CategoryModern
	CategoryOldMasters
	CategoryAsian
	CategoryArtworks // 兜底
)

func (c Category) String() string {
	switch c {
	case CategoryPainting:
		return "painting"
	case CategoryDrawing:
		return "drawing"
	case CategoryPrint:
		return "print"
	case CategorySculpture:
		return "sculpture"
	case CategoryPhotography:
		return "photography"
	case CategoryModern:
		return "modern-art"
	case CategoryOldMasters:
		return "old-masters"
	case CategoryAsian:
		return "asian-art"
	case CategoryArtworks:
		return "artworks"
	default:
		return "artworks"
	}
}

type keywordRule struct {
	category Category
	keywords []string
}

// mediumRules 按媒介关键词映射，子串匹配。
var mediumRules = []keywordRule{
	{CategoryPainting, []string{"paint", "oil", "acrylic", "tempera", "watercolor", "watercolour", "gouache", "fresco", "canvas", "panel"}},
	{CategoryDrawing, []string{"drawing", "charcoal", "pencil", "ink", "chalk", "pastel", "graphite"}},
	{CategoryPrint, []string{"print", "etching", "woodcut", "woodblock", "lithograph", "engraving", "screenprint"}},
	{CategorySculpture, []string{"sculpture", "bronze", "marble", "stone", "carved", "terracotta"}},
	{CategoryPhotography, []string{"photograph", "gelatin silver", "albumen", "daguerreotype"}},
}

// periodRules 按时期（连字符形式）映射，精确匹配。
var periodRules = []keywordRule{
	{CategoryModern, []string{
		"impressionism", "post-impressionism", "fauvism", "expressionism", "abstract-expressionism",
		"cubism", "surrealism", "abstract-art", "art-nouveau", "pop-art", "minimalism", "bauhaus",
	}},
	{CategoryOldMasters, []string{
		"renaissance", "high-renaissance", "baroque", "rococo", "dutch-golden-age",
		"neoclassicism", "romanticism", "mannerism",
	}},
	{CategoryAsian, []string{"ukiyo-e", "song-dynasty", "edo", "ming-dynasty"}},
}

// Categories 由媒介与时期推导分类，结果保持规则顺序且永不为空。
func Categories(a *core.Artwork) []Category {
	out := make([]Category, 0, 2)
	if a != nil {
		medium := strings.ToLower(a.Medium)
		for _, r := range mediumRules {
			if containsAnyKeyword(medium, r.keywords) {
				out = append(out, r.category)
			}
		}

		periods := a.Tags.Periods
		if a.Period != "" {
			periods = append([]string{a.Period}, periods...)
		}
		for _, r := range periodRules {
			if matchesAny(periods, r.keywords) {
				out = append(out, r.category)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, CategoryArtworks)
	}
	return out
}

// CategoryNames 返回 Categories 的字符串形式。
func CategoryNames(a *core.Artwork) []string {
	cats := Categories(a)
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	return out
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func matchesAny(values, keywords []string) bool {
	for _, v := range values {
		for _, kw := range keywords {
			if v == kw {
				return true
			}
		}
	}
	return false
}
