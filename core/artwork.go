package core

import "strings"

// SourceKind 标记作品来自哪一个作品集。
type SourceKind string

const (
	SourceCatalog SourceKind = "catalog" // 批量导入的馆藏目录
	SourceCurated SourceKind = "curated" // 精选公有领域作品集
	SourceManual  SourceKind = "manual"  // 人工录入
)

// Complexity 是作品的视觉复杂度。
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Social 描述作品适合的观看氛围。
type Social string

const (
	SocialSolitary Social = "solitary"
	SocialIntimate Social = "intimate"
	SocialPublic   Social = "public"
)

// Tags 是打分用的作品标签，集合语义（顺序无关）。
type Tags struct {
	Themes     []string   `json:"themes" yaml:"themes"`
	Periods    []string   `json:"periods" yaml:"periods"`
	Mood       []string   `json:"mood" yaml:"mood"`
	Complexity Complexity `json:"complexity" yaml:"complexity"`
	Social     Social     `json:"social" yaml:"social"`
}

// Artwork 是多源汇聚后的统一作品结构。
// 由 pool 持有，构建完成后对其他组件只读。
type Artwork struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Artist     string     `json:"artist"`
	Year       string     `json:"year"` // 空串表示未知
	ImageURL   string     `json:"image_url"`
	Source     SourceKind `json:"source"`
	Themes     []string   `json:"themes"`
	Mood       []string   `json:"mood"`
	Period     string     `json:"period"`
	Medium     string     `json:"medium"`
	Complexity Complexity `json:"complexity"`
	Tags       Tags       `json:"tags"`

	// OriginalData 原始记录透传，引擎不解释其内容
	OriginalData map[string]any `json:"original_data,omitempty"`
}

// DedupKey 返回跨源去重使用的 key：lower(title + "-" + artist)。
func (a *Artwork) DedupKey() string {
	if a == nil {
		return "-"
	}
	return strings.ToLower(a.Title + "-" + a.Artist)
}

// ArtistName 供按艺术家限流的多样性过滤使用。
func (a *Artwork) ArtistName() string {
	if a == nil {
		return ""
	}
	return a.Artist
}

// Malformed 报告记录是否缺少 title 或 artist。
func (a *Artwork) Malformed() bool {
	return strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Artist) == ""
}
