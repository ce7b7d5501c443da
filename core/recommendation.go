package core

// Recommendation 是一次引擎调用产出的推荐条目，交给展示层后即丢弃，不持久化。
type Recommendation struct {
	Title        string         `json:"title"`
	Artist       string         `json:"artist"`
	Year         string         `json:"year"`
	Description  string         `json:"description"`
	Category     []string       `json:"category"` // 永不为空，兜底为 "artworks"
	Image        string         `json:"image"`
	MatchPercent int            `json:"match_percent"`
	CuratorNote  string         `json:"curator_note"`
	Source       SourceKind     `json:"source"`
	OriginalData map[string]any `json:"original_data,omitempty"`
}

func (r *Recommendation) DedupKey() string {
	return (&Artwork{Title: r.Title, Artist: r.Artist}).DedupKey()
}

func (r *Recommendation) ArtistName() string { return r.Artist }
