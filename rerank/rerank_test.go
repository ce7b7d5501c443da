package rerank

import (
	"context"
	"strings"
	"testing"

	"github.com/rushteam/sayu/core"
)

func art(title, artist string) *core.Artwork {
	return &core.Artwork{ID: title, Title: title, Artist: artist}
}

func titlesOf(list []*core.Artwork) string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Title
	}
	return strings.Join(out, ",")
}

func TestLimitPerArtist(t *testing.T) {
	in := []*core.Artwork{
		art("a1", "A"), art("b1", "B"), art("a2", "A"), art("a3", "A"),
		art("c1", "C"), art("b2", "B"), art("b3", "B"), art("x", ""), art("y", ""),
	}
	tests := []struct {
		name string
		max  int
		want string
	}{
		{"default cap", DefaultMaxPerArtist, "a1,b1,a2,c1,b2,x,y"},
		{"cap one", 1, "a1,b1,c1,x"},
		{"cap larger than input", 10, "a1,b1,a2,a3,c1,b2,b3,x,y"},
		{"zero", 0, ""},
		{"negative", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LimitPerArtist(in, tt.max)
			if titlesOf(got) != tt.want {
				t.Errorf("LimitPerArtist(max=%d) = %s, want %s", tt.max, titlesOf(got), tt.want)
			}
		})
	}
}

func TestLimitPerArtist_NoArtistExceedsCap(t *testing.T) {
	var in []*core.Artwork
	for i := 0; i < 30; i++ {
		in = append(in, art(string(rune('a'+i)), []string{"A", "B", "C"}[i%3]))
	}
	for max := 1; max <= 4; max++ {
		counts := map[string]int{}
		for _, a := range LimitPerArtist(in, max) {
			counts[a.Artist]++
		}
		for artist, c := range counts {
			if c > max {
				t.Errorf("max=%d: artist %s appears %d times", max, artist, c)
			}
		}
	}
}

func TestArtistDiversityNode(t *testing.T) {
	items := core.NewItems([]*core.Artwork{art("a1", "A"), art("a2", "A"), art("a3", "A"), art("b1", "B")})
	rctx := &core.RecommendContext{}

	out, err := (&ArtistDiversity{}).Process(context.Background(), rctx, items)
	if err != nil || len(out) != 3 {
		t.Fatalf("default cap: %d items, err %v", len(out), err)
	}
	if lbl, ok := rctx.GetLabel("diversity_dropped"); !ok || lbl.Value != "1" {
		t.Errorf("diversity_dropped = %+v", lbl)
	}

	out, _ = (&ArtistDiversity{}).Process(context.Background(), &core.RecommendContext{MaxPerArtist: 1}, items)
	if len(out) != 2 {
		t.Errorf("rctx cap 1: %d items, want 2", len(out))
	}
}

func TestTopNNode(t *testing.T) {
	items := core.NewItems([]*core.Artwork{art("a", "A"), art("b", "B"), art("c", "C")})
	tests := []struct {
		n, count, want int
	}{
		{2, 0, 2},
		{0, 1, 1},
		{0, 0, 3},
		{5, 0, 3},
	}
	for _, tt := range tests {
		out, _ := (&TopNNode{N: tt.n}).Process(context.Background(), &core.RecommendContext{Count: tt.count}, items)
		if len(out) != tt.want {
			t.Errorf("TopN(n=%d, count=%d) = %d, want %d", tt.n, tt.count, len(out), tt.want)
		}
	}
}
