package config

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/sayu/catalog"
	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/engine"
	"github.com/rushteam/sayu/filter"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pool"
	"github.com/rushteam/sayu/postprocess"
	"github.com/rushteam/sayu/store"
)

// EngineConfig 是推荐引擎的 YAML 配置。
//
//	sources:
//	  - type: static                # 内置精选集
//	  - type: file
//	    path: data/met.json
//	    kind: catalog
//	  - type: http
//	    name: museum-feed
//	    url: https://example.org/artworks.json
//	  - type: store
//	    key: artworks:manual
//	    kind: manual
//	count: 12
//	max_per_artist: 2
//	seed: 42
//	retry: {max_retries: 2, base_delay: 100ms}
//	store: {type: redis, addr: 127.0.0.1:6379}
//	snapshot: {key: "sayu:pool", ttl: 24h}
//	exclude: ['"nudity" in artwork.themes']
type EngineConfig struct {
	Sources          []SourceConfig `yaml:"sources"`
	Count            int            `yaml:"count"`
	MaxPerArtist     int            `yaml:"max_per_artist"`
	PersonalityRatio float64        `yaml:"personality_ratio"`
	Seed             *uint64        `yaml:"seed"`
	Retry            RetryConfig    `yaml:"retry"`
	Store            StoreConfig    `yaml:"store"`
	Snapshot         SnapshotConfig `yaml:"snapshot"`
	Exclude          []string       `yaml:"exclude"`

	// Pipeline 非空时替换默认的个性化推荐链路
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// SourceConfig 描述一个作品来源。
type SourceConfig struct {
	Type    string          `yaml:"type"` // file / http / store / static
	Name    string          `yaml:"name"`
	Kind    core.SourceKind `yaml:"kind"`
	Path    string          `yaml:"path"`
	URL     string          `yaml:"url"`
	Key     string          `yaml:"key"`
	Timeout time.Duration   `yaml:"timeout"`
}

// RetryConfig 对应 catalog.RetryPolicy，零值字段使用默认值。
type RetryConfig struct {
	MaxRetries       *int          `yaml:"max_retries"`
	BaseDelay        time.Duration `yaml:"base_delay"`
	MaxDelay         time.Duration `yaml:"max_delay"`
	AttemptTimeout   time.Duration `yaml:"attempt_timeout"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

// StoreConfig 选择快照与 store 来源使用的存储。
type StoreConfig struct {
	Type     string `yaml:"type"` // memory / redis，为空表示不使用
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"` // key 前缀，如 "sayu:"
}

// SnapshotConfig 开启作品池快照。
type SnapshotConfig struct {
	Key string        `yaml:"key"`
	TTL time.Duration `yaml:"ttl"`
}

// PipelineConfig 是内嵌的 Pipeline 配置，格式同 pipeline.Config。
type PipelineConfig struct {
	Name  string                `yaml:"name"`
	Nodes []pipeline.NodeConfig `yaml:"nodes"`
}

// LoadEngineConfig 从 YAML 文件加载引擎配置。
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig 解析 YAML 引擎配置。
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查来源与 pipeline 节点类型。
func (c *EngineConfig) Validate() error {
	for i, s := range c.Sources {
		switch s.Type {
		case "static":
		case "file":
			if s.Path == "" {
				return fmt.Errorf("sources[%d]: file source needs path", i)
			}
		case "http":
			if s.URL == "" {
				return fmt.Errorf("sources[%d]: http source needs url", i)
			}
		case "store":
			if s.Key == "" {
				return fmt.Errorf("sources[%d]: store source needs key", i)
			}
			if c.Store.Type == "" {
				return fmt.Errorf("sources[%d]: store source needs a store section", i)
			}
		default:
			return fmt.Errorf("sources[%d]: unknown source type %q", i, s.Type)
		}
		switch s.Kind {
		case "", core.SourceCatalog, core.SourceCurated, core.SourceManual:
		default:
			return fmt.Errorf("sources[%d]: unknown source kind %q", i, s.Kind)
		}
	}
	switch c.Store.Type {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("store: unknown type %q", c.Store.Type)
	}
	if c.Snapshot.Key != "" && c.Store.Type == "" {
		return errors.New("snapshot: needs a store section")
	}
	return ValidatePipelineConfig(c.pipelineConfig())
}

// RetryPolicy 返回合并默认值后的重试策略。
func (c *EngineConfig) RetryPolicy() catalog.RetryPolicy {
	p := catalog.DefaultRetryPolicy()
	r := c.Retry
	if r.MaxRetries != nil {
		p.MaxRetries = *r.MaxRetries
	}
	if r.BaseDelay > 0 {
		p.BaseDelay = r.BaseDelay
	}
	if r.MaxDelay > 0 {
		p.MaxDelay = r.MaxDelay
	}
	if r.AttemptTimeout > 0 {
		p.AttemptTimeout = r.AttemptTimeout
	}
	if r.FailureThreshold > 0 {
		p.FailureThreshold = r.FailureThreshold
	}
	if r.OpenTimeout > 0 {
		p.OpenTimeout = r.OpenTimeout
	}
	return p
}

func (c *EngineConfig) pipelineConfig() *pipeline.Config {
	if len(c.Pipeline.Nodes) == 0 {
		return nil
	}
	pc := &pipeline.Config{}
	pc.Pipeline.Name = c.Pipeline.Name
	pc.Pipeline.Nodes = c.Pipeline.Nodes
	return pc
}

// Loaders 按配置创建作品来源，s 为 store 来源使用的存储（可为 nil）。
func (c *EngineConfig) Loaders(s core.Store) ([]catalog.Loader, error) {
	loaders := make([]catalog.Loader, 0, len(c.Sources))
	for i, sc := range c.Sources {
		switch sc.Type {
		case "static":
			l := catalog.CuratedPublicDomain()
			if sc.Name != "" {
				l.SourceName = sc.Name
			}
			loaders = append(loaders, l)
		case "file":
			loaders = append(loaders, &catalog.FileLoader{Path: sc.Path, SourceName: sc.Name, SourceKind: sc.Kind})
		case "http":
			name := sc.Name
			if name == "" {
				name = sc.URL
			}
			loaders = append(loaders, catalog.NewHTTPLoader(name, sc.URL, sc.Kind, sc.Timeout))
		case "store":
			if s == nil {
				return nil, fmt.Errorf("sources[%d]: store source needs a store", i)
			}
			loaders = append(loaders, &catalog.StoreLoader{Store: s, Key: sc.Key, SourceName: sc.Name, SourceKind: sc.Kind})
		default:
			return nil, fmt.Errorf("sources[%d]: unknown source type %q", i, sc.Type)
		}
	}
	return loaders, nil
}

// OpenStore 按配置打开存储；未配置时返回 nil。
func (c *EngineConfig) OpenStore(ctx context.Context) (core.Store, error) {
	switch c.Store.Type {
	case "":
		return nil, nil
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		rs, err := store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     c.Store.Addr,
			Password: c.Store.Password,
			DB:       c.Store.DB,
			Prefix:   c.Store.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("store: unknown type %q", c.Store.Type)
	}
}

// Runtime 是由配置装配出的引擎及其资源。
type Runtime struct {
	Engine *engine.Engine
	Store  core.Store
}

// Close 释放存储连接。
func (r *Runtime) Close() error {
	if r.Store == nil {
		return nil
	}
	return r.Store.Close()
}

// Build 按配置装配作品池与引擎。
func (c *EngineConfig) Build(ctx context.Context, logger zerolog.Logger) (*Runtime, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s, err := c.OpenStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt := &Runtime{Store: s}

	loaders, err := c.Loaders(s)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	poolOpts := []pool.Option{pool.WithLogger(logger), pool.WithRetryPolicy(c.RetryPolicy())}
	engineOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithDefaults(defaults{DefaultEngineConfig: &core.DefaultEngineConfig{}, cfg: c}),
		engine.WithMaxPerArtist(c.MaxPerArtist),
		engine.WithPersonalityRatio(c.PersonalityRatio),
	}
	var annotator *postprocess.Annotator
	if c.Seed != nil {
		poolOpts = append(poolOpts, pool.WithSeed(*c.Seed))
		engineOpts = append(engineOpts, engine.WithSeed(*c.Seed))
		annotator = postprocess.NewAnnotator(rand.New(rand.NewPCG(*c.Seed, *c.Seed)))
	}
	if s != nil && c.Snapshot.Key != "" {
		poolOpts = append(poolOpts, pool.WithSnapshot(s, c.Snapshot.Key, c.Snapshot.TTL))
	}
	agg := pool.New(loaders, poolOpts...)

	for _, expr := range c.Exclude {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("exclude %q: %w", expr, err)
		}
		engineOpts = append(engineOpts, engine.WithExclude(f))
	}

	if pc := c.pipelineConfig(); pc != nil {
		p, err := pc.BuildPipeline(NewFactory(Deps{Pool: agg, Annotator: annotator, Store: s, Logger: logger}))
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, engine.WithPipeline(p))
	}

	rt.Engine = engine.New(agg, engineOpts...)
	return rt, nil
}

// defaults 用配置覆盖默认条数，其余沿用内置默认值。
type defaults struct {
	*core.DefaultEngineConfig
	cfg *EngineConfig
}

func (d defaults) DefaultCount() int {
	if d.cfg.Count > 0 {
		return d.cfg.Count
	}
	return d.DefaultEngineConfig.DefaultCount()
}
