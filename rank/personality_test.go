package rank

import (
	"context"
	"testing"

	"github.com/rushteam/sayu/core"
)

func dreamer(id string) *core.Item {
	return core.NewItem(&core.Artwork{ID: id, Tags: core.Tags{
		Themes:  []string{"dreamscape", "emotion", "color"},
		Periods: []string{"surrealism", "fauvism"},
		Social:  core.SocialSolitary,
	}})
}

func activist(id string) *core.Item {
	return core.NewItem(&core.Artwork{ID: id, Tags: core.Tags{
		Themes: []string{"political"},
		Social: core.SocialPublic,
	}})
}

func TestPersonalityNode_Score(t *testing.T) {
	tests := []struct {
		name     string
		node     *PersonalityNode
		rctxCode string
		item     *core.Item
		want     float64
	}{
		{"context code", &PersonalityNode{}, "LAEF", dreamer("1"), 100},
		{"lowercase context code", &PersonalityNode{}, " laef ", activist("1"), 40},
		{"node code overrides context", &PersonalityNode{Code: "laef"}, "ZZZZ", dreamer("1"), 100},
		{"unknown code is neutral", &PersonalityNode{}, "ZZZZ", dreamer("1"), 50},
		{"nil artwork is neutral", &PersonalityNode{}, "LAEF", core.NewItem(nil), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{PersonalityCode: tt.rctxCode}
			out, err := tt.node.Process(context.Background(), rctx, []*core.Item{tt.item})
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			if out[0].Score != tt.want {
				t.Errorf("Score = %v, want %v", out[0].Score, tt.want)
			}
			lbl, ok := out[0].Labels["match_score"]
			if !ok {
				t.Fatal("match_score label missing")
			}
			if lbl.Source != "rank" {
				t.Errorf("label source = %q, want rank", lbl.Source)
			}
		})
	}
}

func TestPersonalityNode_NilAndEmpty(t *testing.T) {
	n := &PersonalityNode{}
	rctx := &core.RecommendContext{PersonalityCode: "LAEF"}

	out, err := n.Process(context.Background(), rctx, nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("empty input: out=%v err=%v", out, err)
	}

	out, err = n.Process(context.Background(), nil, []*core.Item{nil, dreamer("1")})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out[0] != nil {
		t.Error("nil item should stay in place")
	}
	if out[1].Score != 50 {
		t.Errorf("nil rctx should score neutral, got %v", out[1].Score)
	}
}

func TestPersonalityNode_Sort(t *testing.T) {
	rctx := &core.RecommendContext{PersonalityCode: "LAEF"}
	ids := func(items []*core.Item) []string {
		var out []string
		for _, it := range items {
			if it == nil {
				out = append(out, "<nil>")
				continue
			}
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		name string
		sort bool
		want []string
	}{
		{"keeps recall order", false, []string{"a1", "<nil>", "d1", "a2", "d2"}},
		{"descending stable, nil last", true, []string{"d1", "d2", "a1", "a2", "<nil>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []*core.Item{activist("a1"), nil, dreamer("d1"), activist("a2"), dreamer("d2")}
			out, err := (&PersonalityNode{Sort: tt.sort}).Process(context.Background(), rctx, items)
			if err != nil {
				t.Fatalf("Process: %v", err)
			}
			got := ids(out)
			if len(got) != len(tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
