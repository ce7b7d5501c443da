package postprocess

import (
	"context"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/rushteam/sayu/core"
)

func seeded(seed uint64) *Annotator {
	return NewAnnotator(rand.New(rand.NewPCG(seed, seed)))
}

func TestMatchPercent_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		artwork  *core.Artwork
		code     string
		min, max int
	}{
		{"catalog plain", &core.Artwork{Source: core.SourceCatalog}, "SRMC", 82, 88},
		{"curated", &core.Artwork{Source: core.SourceCurated}, "SRMC", 87, 93},
		{"manual rich themes", &core.Artwork{Source: core.SourceManual, Themes: []string{"a", "b", "c", "d"}}, "SRMC", 90, 96},
		{"all bonuses clamp", &core.Artwork{Source: core.SourceCurated, Themes: []string{"a", "b", "c", "d"}}, "laef", 95, 98},
		{"unknown code", &core.Artwork{Source: core.SourceCatalog}, "ZZZZ", 82, 88},
		{"nil artwork", nil, "", 82, 88},
	}
	an := seeded(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				p := an.MatchPercent(tt.artwork, tt.code)
				if p < tt.min || p > tt.max || p < MinMatchPercent || p > MaxMatchPercent {
					t.Fatalf("MatchPercent = %d, want [%d,%d]", p, tt.min, tt.max)
				}
			}
		})
	}
}

func TestMatchPercent_SeedReproducible(t *testing.T) {
	a := &core.Artwork{Source: core.SourceCatalog}
	x, y := seeded(9), seeded(9)
	for i := 0; i < 20; i++ {
		if x.MatchPercent(a, "LAEF") != y.MatchPercent(a, "LAEF") {
			t.Fatal("same seed should give the same jitter")
		}
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name    string
		artwork *core.Artwork
		want    []string
	}{
		{"oil painting modern", &core.Artwork{Medium: "Oil on canvas", Period: "post-impressionism"}, []string{"painting", "modern-art"}},
		{"woodblock ukiyo-e", &core.Artwork{Medium: "woodblock print", Tags: core.Tags{Periods: []string{"ukiyo-e"}}}, []string{"print", "asian-art"}},
		{"generic painting medium", &core.Artwork{Medium: "Painting"}, []string{"painting"}},
		{"paint on board", &core.Artwork{Medium: "enamel paint on board"}, []string{"painting"}},
		{"bronze", &core.Artwork{Medium: "Bronze"}, []string{"sculpture"}},
		{"baroque only", &core.Artwork{Medium: "unknown", Period: "baroque"}, []string{"old-masters"}},
		{"fallback", &core.Artwork{Medium: "mixed media", Period: "contemporary"}, []string{"artworks"}},
		{"nil", nil, []string{"artworks"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryNames(tt.artwork); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CategoryNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCuratorNote(t *testing.T) {
	an := seeded(3)
	full := &core.Artwork{Artist: "Claude Monet", Medium: "Oil on canvas", Themes: []string{"daily-life", "light"}, Mood: []string{"serene"}}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		note := an.CuratorNote(full)
		if note == "" {
			t.Fatal("empty curator note")
		}
		seen[note] = true
	}
	if len(seen) != len(noteKinds) {
		t.Errorf("saw %d distinct notes, want %d", len(seen), len(noteKinds))
	}
	if !seen[NoteTheme.render(full)] || !strings.Contains(NoteTheme.render(full), "daily life and light") {
		t.Errorf("theme note = %q", NoteTheme.render(full))
	}

	bare := &core.Artwork{Medium: "unknown"}
	if got := an.CuratorNote(bare); got != NoteGeneric.render(bare) {
		t.Errorf("bare artwork note = %q", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		artwork *core.Artwork
		want    string
	}{
		{&core.Artwork{Title: "Water Lilies", Artist: "Claude Monet", Year: "1906", Medium: "Oil on canvas"}, "Water Lilies by Claude Monet (1906), oil on canvas."},
		{&core.Artwork{Title: "Untitled", Medium: "unknown"}, "Untitled."},
		{&core.Artwork{Title: "X", OriginalData: map[string]any{"description": " From the record. "}}, "From the record."},
	}
	for _, tt := range tests {
		if got := Describe(tt.artwork); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestAnnotateNode(t *testing.T) {
	items := core.NewItems([]*core.Artwork{
		{ID: "1", Title: "A", Artist: "X", Medium: "oil", Source: core.SourceCurated},
		{ID: "2", Title: "B", Artist: "Y"},
	})
	rctx := &core.RecommendContext{PersonalityCode: "LAEF"}
	out, err := (&AnnotateNode{Annotator: seeded(5)}).Process(context.Background(), rctx, items)
	if err != nil {
		t.Fatal(err)
	}
	recs := Recommendations(out)
	if len(recs) != 2 || recs[0].Title != "A" || recs[1].Title != "B" {
		t.Fatalf("Recommendations() = %+v", recs)
	}
	for _, r := range recs {
		if len(r.Category) == 0 || r.CuratorNote == "" || r.MatchPercent < MinMatchPercent || r.MatchPercent > MaxMatchPercent {
			t.Errorf("incomplete recommendation %+v", r)
		}
	}
	if out[0].Labels["category"].Value != "painting" {
		t.Errorf("category label = %+v", out[0].Labels["category"])
	}
}
