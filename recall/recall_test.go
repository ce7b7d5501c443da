package recall

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pool"
)

// fakePool 返回固定顺序的作品，便于断言配额与顺序。
type fakePool struct {
	ranked  []*core.Artwork
	sampled []*core.Artwork
	byType  map[string][]*core.Artwork

	sampleN    int
	sampleCode string
}

func (p *fakePool) ForPersonality(_ context.Context, _ string) []*core.Artwork { return p.ranked }

func (p *fakePool) RandomSample(_ context.Context, n int, code string) []*core.Artwork {
	p.sampleN, p.sampleCode = n, code
	return head(p.sampled, n)
}

func (p *fakePool) ByType(_ context.Context, dim pool.Dimension, value string) []*core.Artwork {
	return p.byType[string(dim)+"="+value]
}

func artworks(prefix string, n int) []*core.Artwork {
	out := make([]*core.Artwork, n)
	for i := range out {
		name := prefix + string(rune('a'+i))
		out[i] = &core.Artwork{ID: name, Title: name, Artist: prefix}
	}
	return out
}

func TestQuota(t *testing.T) {
	tests := []struct {
		count int
		ratio float64
		want  int
	}{
		{12, 0.7, 9},
		{12, 0.3, 4},
		{10, 0.7, 7},
		{10, 0.3, 3},
		{1, 0.3, 1},
		{0, 0.7, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Quota(tt.count, tt.ratio); got != tt.want {
			t.Errorf("Quota(%d, %v) = %d, want %d", tt.count, tt.ratio, got, tt.want)
		}
	}
}

func TestPersonalityAndDiversityRecall(t *testing.T) {
	p := &fakePool{ranked: artworks("p", 20), sampled: artworks("d", 20)}
	rctx := &core.RecommendContext{PersonalityCode: " laef ", Count: 12}
	ctx := context.Background()

	got, err := (&PersonalityRecall{Pool: p}).Recall(ctx, rctx)
	if err != nil || len(got) != 9 || got[0].ID != "pa" {
		t.Fatalf("PersonalityRecall = %d items, err %v", len(got), err)
	}

	got, err = (&DiversityRecall{Pool: p}).Recall(ctx, rctx)
	if err != nil || len(got) != 4 {
		t.Fatalf("DiversityRecall = %d items, err %v", len(got), err)
	}
	if p.sampleN != 24 || p.sampleCode != "LAEF" {
		t.Errorf("RandomSample(n=%d, code=%q), want (24, LAEF)", p.sampleN, p.sampleCode)
	}
}

func TestQueryRecall(t *testing.T) {
	p := &fakePool{byType: map[string][]*core.Artwork{
		"theme=nature": artworks("t", 5),
		"mood=calm":    artworks("m", 2),
	}}
	ctx := context.Background()

	got, _ := NewThemeRecall(p).Recall(ctx, &core.RecommendContext{Count: 3, Params: map[string]any{"theme": "nature"}})
	if len(got) != 3 {
		t.Errorf("theme recall = %d items, want 3", len(got))
	}
	got, _ = NewMoodRecall(p).Recall(ctx, &core.RecommendContext{Count: 10, Params: map[string]any{"mood": "calm"}})
	if len(got) != 2 {
		t.Errorf("mood recall = %d items, want 2", len(got))
	}
	unlimited := &QueryRecall{Pool: p, Dimension: pool.DimensionTheme, Limit: -1}
	got, _ = unlimited.Recall(ctx, &core.RecommendContext{Count: 3, Params: map[string]any{"theme": "nature"}})
	if len(got) != 5 {
		t.Errorf("unlimited theme recall = %d items, want 5", len(got))
	}
	got, _ = NewArtistRecall(p).Recall(ctx, &core.RecommendContext{Count: 10})
	if len(got) != 0 {
		t.Errorf("artist recall without param = %d items, want 0", len(got))
	}
}

type stubSource struct {
	name  string
	items []*core.Item
	err   error
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	return s.items, s.err
}

func TestBlend_PriorityOrder(t *testing.T) {
	first := core.NewItems(artworks("x", 2))
	second := core.NewItems(artworks("y", 3))
	n := &Blend{Sources: []Source{
		&stubSource{name: "first", items: first},
		&stubSource{name: "broken", err: errors.New("boom")},
		&stubSource{name: "second", items: second},
	}}

	got, err := n.Process(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(got))
	for i, it := range got {
		ids[i] = it.ID
	}
	if strings.Join(ids, ",") != "xa,xb,ya,yb,yc" {
		t.Errorf("order = %v", ids)
	}
	if got[0].Labels["recall_source"].Value != "first" || got[4].Labels["recall_priority"].Value != "2" {
		t.Errorf("labels = %+v / %+v", got[0].Labels, got[4].Labels)
	}
}

func TestBlend_NoSources(t *testing.T) {
	got, err := (&Blend{}).Process(context.Background(), nil, nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("Process() = %v, %v; want empty slice", got, err)
	}
}
