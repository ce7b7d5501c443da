package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rushteam/sayu/core"
)

// tagNode 在末尾追加一个 ID 为 tag 的 Item。
type tagNode struct {
	tag string
	err error
}

func (n *tagNode) Name() string { return "test.tag" }
func (n *tagNode) Kind() Kind   { return KindRecall }

func (n *tagNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	if n.err != nil {
		return nil, n.err
	}
	return append(items, &core.Item{ID: n.tag}), nil
}

func itemIDs(items []*core.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.ID
	}
	return strings.Join(parts, ",")
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{&tagNode{tag: "a"}, &tagNode{tag: "b"}}}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil || itemIDs(out) != "a,b" {
		t.Fatalf("Run() = %q, %v", itemIDs(out), err)
	}

	boom := errors.New("boom")
	bad := p.Append(&tagNode{err: boom})
	if _, err := bad.Run(context.Background(), &core.RecommendContext{}, nil); !errors.Is(err, boom) {
		t.Errorf("Run() err = %v, want wrapping boom", err)
	}
	if len(p.Nodes) != 2 || len(bad.Nodes) != 3 {
		t.Errorf("Append modified the original pipeline: %d / %d nodes", len(p.Nodes), len(bad.Nodes))
	}
	if got := strings.Join(bad.Names(), ","); got != "test.tag,test.tag,test.tag" {
		t.Errorf("Names() = %s", got)
	}
}

func TestNodeFunc(t *testing.T) {
	var logs strings.Builder
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)
	drop := NodeFunc{
		NodeName: "test.drop_first",
		NodeKind: KindFilter,
		Fn: func(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
			return items[1:], nil
		},
	}
	p := &Pipeline{Nodes: []Node{&tagNode{tag: "a"}, &tagNode{tag: "b"}, drop}, Logger: &logger}
	out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil || itemIDs(out) != "b" {
		t.Fatalf("Run() = %q, %v", itemIDs(out), err)
	}
	if !strings.Contains(logs.String(), `"node":"test.drop_first"`) {
		t.Errorf("missing node trace in logs: %s", logs.String())
	}
}

func testFactory() *NodeFactory {
	f := NewNodeFactory()
	f.Register("test.tag", func(cfg map[string]interface{}) (Node, error) {
		tag, _ := cfg["tag"].(string)
		if tag == "" {
			return nil, fmt.Errorf("tag is required")
		}
		return &tagNode{tag: tag}, nil
	})
	return f
}

func TestLoadAndBuild(t *testing.T) {
	for _, path := range []string{"testdata/pipeline.yaml", "testdata/pipeline.json"} {
		t.Run(path, func(t *testing.T) {
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Pipeline.Name != "demo" || len(cfg.Pipeline.Nodes) != 2 {
				t.Fatalf("config = %+v", cfg.Pipeline)
			}
			p, err := cfg.BuildPipeline(testFactory())
			if err != nil {
				t.Fatal(err)
			}
			out, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
			if err != nil || itemIDs(out) != "a,b" {
				t.Errorf("Run() = %q, %v", itemIDs(out), err)
			}
		})
	}

	if _, err := LoadFromYAML("testdata/missing.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestBuildPipelineErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown type", "pipeline: {nodes: [{type: nope}]}", "unknown node type"},
		{"builder error", "pipeline: {nodes: [{type: test.tag}]}", "tag is required"},
		{"no nodes", "pipeline: {name: empty}", "no nodes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := cfg.BuildPipeline(testFactory()); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
