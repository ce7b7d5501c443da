package core

// EngineDefaults 是推荐引擎的默认参数接口。
// 这些常量来自产品约定（70/30 混排、每位艺术家最多 2 件等），视为契约而不是调参项。
type EngineDefaults interface {
	// DefaultCount 默认推荐条数
	DefaultCount() int

	// DefaultMaxPerArtist 默认同一艺术家最多条数
	DefaultMaxPerArtist() int

	// PersonalityRatio 人格定向候选在混排中的占比
	PersonalityRatio() float64
}

// DefaultEngineConfig 是默认的引擎参数实现。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultCount() int {
	return 12
}

func (c *DefaultEngineConfig) DefaultMaxPerArtist() int {
	return 2
}

func (c *DefaultEngineConfig) PersonalityRatio() float64 {
	return 0.7
}
