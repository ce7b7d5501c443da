package catalog

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/rushteam/sayu/core"
)

// artworkNamespace 用于为缺少 id 的记录生成稳定 ID。
var artworkNamespace = uuid.MustParse("5b0b7c2e-8d1f-4c3a-9a57-2f3a3c1d9e41")

// UnknownMedium 是缺失媒介时的占位值。
const UnknownMedium = "unknown"

// Normalize 把原始记录转换为统一作品结构。缺失字段填默认值，永不返回 nil。
func Normalize(rec Record, kind core.SourceKind) *core.Artwork {
	a := &core.Artwork{
		ID:           rec.String("id", "objectID", "object_id"),
		Title:        rec.String("title", "name"),
		Artist:       rec.String("artist", "artistDisplayName", "artist_name", "creator"),
		Year:         rec.String("year", "date", "objectDate"),
		ImageURL:     rec.String("image_url", "imageUrl", "image", "primaryImage"),
		Source:       kind,
		Medium:       rec.String("medium", "technique"),
		Period:       normalizeTag(rec.String("period", "movement", "style")),
		OriginalData: map[string]any(rec),
	}
	if a.Source == "" {
		a.Source = core.SourceManual
	}
	if a.Medium == "" {
		a.Medium = UnknownMedium
	}
	if a.ID == "" {
		a.ID = uuid.NewSHA1(artworkNamespace, []byte(string(a.Source)+":"+a.DedupKey())).String()
	}

	description := rec.String("description", "summary")
	a.Themes = mergeTags(normalizeTags(rec.Strings("themes", "tags", "keywords")),
		inferThemes(a.Title+" "+description+" "+a.Medium))
	a.Mood = normalizeTags(rec.Strings("mood", "moods"))

	periods := normalizeTags(rec.Strings("periods"))
	if a.Period != "" {
		periods = mergeTags([]string{a.Period}, periods)
	}

	a.Complexity = parseComplexity(rec.String("complexity"), a.Themes)
	a.Tags = core.Tags{
		Themes:     a.Themes,
		Periods:    periods,
		Mood:       a.Mood,
		Complexity: a.Complexity,
		Social:     parseSocial(rec.String("social"), a.Themes),
	}
	return a
}

// NormalizeAll 归一化一批记录。
func NormalizeAll(recs []Record, kind core.SourceKind) []*core.Artwork {
	out := make([]*core.Artwork, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		out = append(out, Normalize(rec, kind))
	}
	return out
}

// normalizeTag: 小写，空格/下划线转连字符。"Abstract Expressionism" -> "abstract-expressionism"
func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
}

func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := normalizeTag(s); t != "" {
			out = append(out, t)
		}
	}
	return mergeTags(out)
}

// mergeTags 合并多个列表并去重，保持首次出现顺序。
func mergeTags(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range lists {
		for _, s := range l {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// themeKeywords 把标题/描述中的关键词映射为主题标签。
var themeKeywords = []struct {
	keyword string
	themes  []string
}{
	{"dream", []string{"dreamscape"}},
	{"night", []string{"dreamscape", "mystery"}},
	{"moon", []string{"dreamscape"}},
	{"self-portrait", []string{"portrait", "intimacy"}},
	{"portrait", []string{"portrait"}},
	{"landscape", []string{"landscape", "nature"}},
	{"mountain", []string{"landscape", "nature"}},
	{"river", []string{"landscape", "nature"}},
	{"sea", []string{"landscape", "nature"}},
	{"garden", []string{"nature", "light"}},
	{"flower", []string{"nature"}},
	{"still life", []string{"still-life", "domestic"}},
	{"war", []string{"political", "history"}},
	{"revolution", []string{"political", "history"}},
	{"madonna", []string{"religion"}},
	{"saint", []string{"religion"}},
	{"christ", []string{"religion"}},
	{"city", []string{"daily-life"}},
	{"street", []string{"daily-life", "people"}},
	{"dance", []string{"celebration", "movement", "people"}},
	{"festival", []string{"celebration", "people"}},
	{"composition", []string{"structure"}},
	{"geometric", []string{"geometry", "pattern"}},
	{"myth", []string{"mythology"}},
	{"lake", []string{"landscape", "nature"}},
}

// inferThemes 按整词匹配关键词（允许复数 s），避免 "war" 命中 "warm"。
func inferThemes(text string) []string {
	text = " " + strings.Join(strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	}), " ") + " "
	out := make([]string, 0)
	for _, kw := range themeKeywords {
		if strings.Contains(text, " "+kw.keyword+" ") || strings.Contains(text, " "+kw.keyword+"s ") {
			out = append(out, kw.themes...)
		}
	}
	return mergeTags(out)
}

func parseComplexity(s string, themes []string) core.Complexity {
	switch core.Complexity(strings.ToLower(strings.TrimSpace(s))) {
	case core.ComplexitySimple:
		return core.ComplexitySimple
	case core.ComplexityModerate:
		return core.ComplexityModerate
	case core.ComplexityComplex:
		return core.ComplexityComplex
	}
	switch {
	case len(themes) > 4:
		return core.ComplexityComplex
	case len(themes) <= 1:
		return core.ComplexitySimple
	default:
		return core.ComplexityModerate
	}
}

var (
	publicThemes   = []string{"people", "celebration", "society", "community", "daily-life"}
	solitaryThemes = []string{"solitude", "landscape", "meditation", "dreamscape", "nature"}
)

func parseSocial(s string, themes []string) core.Social {
	switch core.Social(strings.ToLower(strings.TrimSpace(s))) {
	case core.SocialSolitary:
		return core.SocialSolitary
	case core.SocialIntimate:
		return core.SocialIntimate
	case core.SocialPublic:
		return core.SocialPublic
	}
	switch {
	case containsAny(themes, publicThemes):
		return core.SocialPublic
	case containsAny(themes, solitaryThemes):
		return core.SocialSolitary
	default:
		return core.SocialIntimate
	}
}

func containsAny(values, set []string) bool {
	for _, v := range values {
		for _, s := range set {
			if v == s {
				return true
			}
		}
	}
	return false
}
