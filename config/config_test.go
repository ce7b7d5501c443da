package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/catalog"
	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pool"
	"github.com/rushteam/sayu/recall"
)

const sampleConfig = `
sources:
  - type: static
    name: curated
  - type: file
    path: testdata/catalog.json
    kind: catalog
count: 6
max_per_artist: 1
seed: 42
retry:
  max_retries: 0
  base_delay: 5ms
store:
  type: memory
snapshot:
  key: sayu:pool
  ttl: 1h
exclude:
  - 'artwork.artist == "Vincent van Gogh"'
`

func TestParseEngineConfig(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sources) != 2 || cfg.Sources[1].Kind != core.SourceCatalog {
		t.Errorf("Sources = %+v", cfg.Sources)
	}
	if cfg.Count != 6 || cfg.MaxPerArtist != 1 || cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Snapshot.TTL != time.Hour {
		t.Errorf("Snapshot.TTL = %v", cfg.Snapshot.TTL)
	}

	p := cfg.RetryPolicy()
	if p.MaxRetries != 0 || p.BaseDelay != 5*time.Millisecond || p.FailureThreshold != catalog.DefaultRetryPolicy().FailureThreshold {
		t.Errorf("RetryPolicy = %+v", p)
	}
	if (&EngineConfig{}).RetryPolicy().MaxRetries != 2 {
		t.Error("default retry policy should allow 2 retries")
	}
}

func TestParseEngineConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown source", "sources: [{type: ftp}]", "unknown source type"},
		{"file without path", "sources: [{type: file}]", "needs path"},
		{"http without url", "sources: [{type: http}]", "needs url"},
		{"store without store", "sources: [{type: store, key: k}]", "store section"},
		{"bad kind", "sources: [{type: static, kind: museum}]", "unknown source kind"},
		{"snapshot without store", "snapshot: {key: k}", "snapshot"},
		{"bad store", "store: {type: etcd}", "unknown type"},
		{"bad node", "pipeline: {nodes: [{type: rank.lr}]}", "unsupported node type"},
		{"bad yaml", "sources: [", "parse yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEngineConfig([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	rt, err := cfg.Build(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()
	ctx := context.Background()

	p := rt.Engine.Pool(ctx)
	if p.Metadata.Counts["curated"] != 14 || p.Metadata.Counts["catalog"] != 3 {
		t.Errorf("Counts = %v", p.Metadata.Counts)
	}
	if p.IsDegraded() {
		t.Errorf("Degraded = %v", p.Metadata.Degraded)
	}

	recs := rt.Engine.PersonalizedRecommendations(ctx, "LAEF", 0)
	if len(recs) == 0 || len(recs) > 6 {
		t.Fatalf("got %d recommendations, want 1..6", len(recs))
	}
	artists := map[string]bool{}
	for _, r := range recs {
		if r.Artist == "Vincent van Gogh" {
			t.Errorf("excluded artist returned: %q", r.Title)
		}
		if artists[r.Artist] {
			t.Errorf("max_per_artist 1 violated by %q", r.Artist)
		}
		artists[r.Artist] = true
	}

	if _, err := rt.Store.Get(ctx, "sayu:pool"); err != nil {
		t.Errorf("pool snapshot not written: %v", err)
	}
}

func TestBuild_RedisStoreSource(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet("sayu:artworks:manual", "1", `{"title":"Hand Entered","artist":"Someone","themes":["nature"]}`)

	cfg, err := ParseEngineConfig([]byte(`
sources:
  - type: store
    name: manual
    key: artworks:manual
    kind: manual
store:
  type: redis
  addr: "` + mr.Addr() + `"
  prefix: "sayu:"
snapshot:
  key: pool
retry: {max_retries: 0}
`))
	if err != nil {
		t.Fatal(err)
	}
	rt, err := cfg.Build(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Close()

	recs := rt.Engine.ThemeRecommendations(context.Background(), "nature", 5)
	if len(recs) != 1 || recs[0].Title != "Hand Entered" || recs[0].Source != core.SourceManual {
		t.Errorf("ThemeRecommendations = %+v", recs)
	}
	if !mr.Exists("sayu:pool") {
		t.Error("snapshot should be written under the key prefix")
	}
}

func TestBuild_CustomPipeline(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte(`
sources: [{type: static}]
seed: 7
pipeline:
  name: personality-only
  nodes:
    - type: recall.blend
      config:
        sources:
          - {type: personality, ratio: 3} # 取全部候选，由后续节点过滤
    - type: rank.personality
    - type: filter.dedup
    - type: filter.blacklist
      config:
        artists: ["Claude Monet"]
    - type: rerank.artist_diversity
      config: {max_per_artist: 1}
    - type: rerank.topn
    - type: postprocess.annotate
`))
	if err != nil {
		t.Fatal(err)
	}
	rt, err := cfg.Build(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	recs := rt.Engine.PersonalizedRecommendations(context.Background(), "LAEF", 5)
	if len(recs) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(recs))
	}
	if recs[0].Title != "The Starry Night" {
		t.Errorf("first = %q, want the top LAEF match", recs[0].Title)
	}
	for _, r := range recs {
		if r.Artist == "Claude Monet" {
			t.Errorf("blacklisted artist returned: %q", r.Title)
		}
	}
}

func TestNewFactory(t *testing.T) {
	agg := pool.New([]catalog.Loader{catalog.CuratedPublicDomain()})
	f := NewFactory(Deps{Pool: agg})

	tests := []struct {
		typ     string
		cfg     map[string]interface{}
		name    string
		wantErr bool
	}{
		{"recall.blend", map[string]interface{}{"sources": []interface{}{
			map[string]interface{}{"type": "personality"},
			map[string]interface{}{"type": "diversity", "ratio": 0.3},
			map[string]interface{}{"type": "mood", "param": "q", "limit": 3},
		}, "timeout_ms": 200}, "recall.blend", false},
		{"recall.blend", map[string]interface{}{}, "", true},
		{"recall.blend", map[string]interface{}{"sources": []interface{}{map[string]interface{}{"type": "hot"}}}, "", true},
		{"rank.personality", map[string]interface{}{"code": "LAEF", "sort": true}, "rank.personality", false},
		{"filter.dedup", nil, "filter.dedup", false},
		{"filter.expr", map[string]interface{}{"expr": `artwork.year == ""`}, "filter.node", false},
		{"filter.expr", map[string]interface{}{"expr": `artwork.year ==`}, "", true},
		{"filter.expr", map[string]interface{}{}, "", true},
		{"filter.blacklist", map[string]interface{}{"artwork_ids": []interface{}{"x"}}, "filter.node", false},
		{"filter.bloom_blacklist", map[string]interface{}{"key": "takedown"}, "", true},
		{"rerank.artist_diversity", map[string]interface{}{"max_per_artist": 3}, "rerank.artist_diversity", false},
		{"rerank.topn", map[string]interface{}{"n": 5}, "rerank.topn", false},
		{"postprocess.annotate", nil, "postprocess.annotate", false},
		{"rank.lr", nil, "", true},
	}
	for _, tt := range tests {
		node, err := f.Build(tt.typ, tt.cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Build(%s) err = %v, wantErr %v", tt.typ, err, tt.wantErr)
			continue
		}
		if err == nil && node.Name() != tt.name {
			t.Errorf("Build(%s).Name() = %s, want %s", tt.typ, node.Name(), tt.name)
		}
	}

	node, _ := f.Build("recall.blend", map[string]interface{}{"sources": []interface{}{
		map[string]interface{}{"type": "theme", "limit": -1},
	}})
	blend := node.(*recall.Blend)
	if q := blend.Sources[0].(*recall.QueryRecall); q.Dimension != pool.DimensionTheme || q.Limit != -1 {
		t.Errorf("query source = %+v", q)
	}
}

type passNode struct{}

func (passNode) Name() string        { return "test.pass" }
func (passNode) Kind() pipeline.Kind { return pipeline.KindFilter }
func (passNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

func TestRegisterExtension(t *testing.T) {
	Register("test.pass", func(map[string]interface{}) (pipeline.Node, error) { return passNode{}, nil })

	if err := ValidatePipelineConfig(&pipeline.Config{}); err != nil {
		t.Errorf("empty config: %v", err)
	}
	cfg, err := pipeline.ParseYAML([]byte("pipeline:\n  nodes:\n    - type: test.pass\n    - type: filter.dedup\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Errorf("ValidatePipelineConfig: %v", err)
	}
	p, err := cfg.BuildPipeline(NewFactory(Deps{}))
	if err != nil || len(p.Nodes) != 2 || p.Nodes[0].Name() != "test.pass" {
		t.Errorf("BuildPipeline = %+v, %v", p, err)
	}

	types := SupportedTypes()
	if !contains(types, "test.pass") || !contains(types, "recall.blend") {
		t.Errorf("SupportedTypes = %v", types)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
