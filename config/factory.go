package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/filter"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/conv"
	"github.com/rushteam/sayu/pool"
	"github.com/rushteam/sayu/postprocess"
	"github.com/rushteam/sayu/rank"
	"github.com/rushteam/sayu/recall"
	"github.com/rushteam/sayu/rerank"
)

// Deps 是内置 Node 构建时需要的运行时依赖。
// Pool 为 nil 时无法构建召回节点；Annotator 为 nil 时注解节点自带随机源。
type Deps struct {
	Pool      recall.Pool
	Annotator *postprocess.Annotator
	Store     core.Store // filter.blacklist / filter.bloom_blacklist 读取黑名单
	Logger    zerolog.Logger
}

// builtinTypes 是 NewFactory 内置的 Node 类型。
var builtinTypes = []string{
	"recall.blend",
	"rank.personality",
	"filter.dedup",
	"filter.expr",
	"filter.blacklist",
	"filter.bloom_blacklist",
	"rerank.artist_diversity",
	"rerank.topn",
	"postprocess.annotate",
}

// NewFactory 返回包含全部内置 Node 与 Register 注册的扩展 Node 的工厂。
// 同名时扩展 Node 覆盖内置实现。
func NewFactory(deps Deps) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	// Recall
	f.Register("recall.blend", deps.buildBlendNode)

	// Rank
	f.Register("rank.personality", buildPersonalityNode)

	// Filter
	f.Register("filter.dedup", buildDedupNode)
	f.Register("filter.expr", buildExprNode)
	f.Register("filter.blacklist", deps.buildBlacklistNode)
	f.Register("filter.bloom_blacklist", deps.buildBloomBlacklistNode)

	// ReRank
	f.Register("rerank.artist_diversity", buildArtistDiversityNode)
	f.Register("rerank.topn", buildTopNNode)

	// PostProcess
	f.Register("postprocess.annotate", deps.buildAnnotateNode)

	registered(func(typeName string, builder NodeBuilder) {
		f.Register(typeName, builder)
	})
	return f
}

func (d Deps) buildBlendNode(cfg map[string]interface{}) (pipeline.Node, error) {
	if d.Pool == nil {
		return nil, fmt.Errorf("recall.blend: artwork pool not provided")
	}
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok || len(sourcesConfig) == 0 {
		return nil, fmt.Errorf("recall.blend: sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		ratio := conv.ConfigGetFloat64(sourceMap, "ratio", 0)
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "personality":
			sources = append(sources, &recall.PersonalityRecall{Pool: d.Pool, Ratio: ratio})
		case "diversity":
			sources = append(sources, &recall.DiversityRecall{Pool: d.Pool, Ratio: ratio})
		case "theme", "artist", "mood", "medium", "complexity":
			sources = append(sources, &recall.QueryRecall{
				Pool:      d.Pool,
				Dimension: pool.Dimension(sourceType),
				Param:     conv.ConfigGet(sourceMap, "param", ""),
				Limit:     int(conv.ConfigGetInt64(sourceMap, "limit", 0)),
			})
		default:
			return nil, fmt.Errorf("recall.blend: unknown source type: %s", sourceType)
		}
	}

	blend := &recall.Blend{Sources: sources, Logger: d.Logger}
	if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
		blend.Timeout = time.Duration(ms) * time.Millisecond
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		blend.MaxConcurrent = int(n)
	}
	return blend, nil
}

func buildPersonalityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.PersonalityNode{
		Code: conv.ConfigGet(cfg, "code", ""),
		Sort: conv.ConfigGet(cfg, "sort", false),
	}, nil
}

func buildDedupNode(map[string]interface{}) (pipeline.Node, error) {
	return &filter.DedupNode{}, nil
}

func buildExprNode(cfg map[string]interface{}) (pipeline.Node, error) {
	exprs := append(conv.ConfigGetStrings(cfg, "exprs"), conv.ConfigGetStrings(cfg, "expr")...)
	if len(exprs) == 0 {
		return nil, fmt.Errorf("filter.expr: expr not found")
	}
	filters := make([]filter.Filter, 0, len(exprs))
	for _, e := range exprs {
		f, err := filter.NewExprFilter(e)
		if err != nil {
			return nil, fmt.Errorf("filter.expr %q: %w", e, err)
		}
		filters = append(filters, f)
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func (d Deps) buildBlacklistNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.ConfigGetStrings(cfg, "artwork_ids")
	artists := conv.ConfigGetStrings(cfg, "artists")
	key := conv.ConfigGet(cfg, "key", "")

	var adapter *filter.StoreAdapter
	if d.Store != nil && key != "" {
		adapter = filter.NewStoreAdapter(d.Store)
	}
	return &filter.FilterNode{Filters: []filter.Filter{
		filter.NewBlacklistFilter(ids, artists, adapter, key),
	}}, nil
}

func (d Deps) buildBloomBlacklistNode(cfg map[string]interface{}) (pipeline.Node, error) {
	key := conv.ConfigGet(cfg, "key", "")
	if key == "" {
		return nil, fmt.Errorf("filter.bloom_blacklist: key is required")
	}
	if d.Store == nil {
		return nil, fmt.Errorf("filter.bloom_blacklist: needs a store")
	}
	capacity := conv.ConfigGetInt64(cfg, "capacity", 0)
	rate := conv.ConfigGetFloat64(cfg, "false_positive_rate", 0)
	return &filter.FilterNode{Filters: []filter.Filter{
		filter.NewBloomBlacklist(d.Store, key, uint(max(capacity, 0)), rate),
	}}, nil
}

func buildArtistDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.ArtistDiversity{Max: int(conv.ConfigGetInt64(cfg, "max_per_artist", 0))}, nil
}

func buildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func (d Deps) buildAnnotateNode(map[string]interface{}) (pipeline.Node, error) {
	an := d.Annotator
	if an == nil {
		an = postprocess.NewAnnotator(nil)
	}
	return &postprocess.AnnotateNode{Annotator: an}, nil
}
