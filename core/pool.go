package core

import "time"

// Pool 是所有来源作品的内存汇总。进程内只构建一次，之后只读，显式刷新时整体替换。
type Pool struct {
	Artworks []*Artwork   `json:"artworks"`
	Metadata PoolMetadata `json:"metadata"`
}

// PoolMetadata 记录构建结果，便于解释去重/降级行为。
type PoolMetadata struct {
	// Counts 每个来源贡献的作品数（key 为来源名称）
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`

	// Degraded 加载失败（重试后仍失败）的来源名称
	Degraded []string `json:"degraded,omitempty"`

	// Malformed 缺少 title/artist 的记录数（仍保留在池中）
	Malformed int `json:"malformed"`

	BuiltAt      time.Time `json:"built_at"`
	FromSnapshot bool      `json:"from_snapshot"`
}

// Empty 报告池中是否没有任何作品。
func (p *Pool) Empty() bool {
	return p == nil || len(p.Artworks) == 0
}

// IsDegraded 报告是否有来源未能加载。
func (p *Pool) IsDegraded() bool {
	return p != nil && len(p.Metadata.Degraded) > 0
}
