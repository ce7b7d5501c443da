package personality

import (
	"testing"

	"github.com/rushteam/sayu/core"
)

func TestTableCoversAllCombinations(t *testing.T) {
	if len(profiles) != 16 {
		t.Fatalf("profiles = %d, want 16", len(profiles))
	}
	letters := [4]map[byte]string{
		{'L': string(ViewingAlone), 'S': string(ViewingSocial)},
		{'A': string(ArtAbstract), 'R': string(ArtRepresentational)},
		{'E': string(ApproachEmotional), 'M': string(ApproachIntellectual)},
		{'F': string(ProcessingFree), 'C': string(ProcessingSystematic)},
	}
	seen := make(map[string]bool)
	for _, code := range Codes() {
		p, ok := Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%q) missing", code)
		}
		dims := []string{string(p.ViewingStyle), string(p.ArtType), string(p.Approach), string(p.Processing)}
		for i := 0; i < 4; i++ {
			if letters[i][code[i]] != dims[i] {
				t.Errorf("%s: dimension %d = %q, want %q", code, i, dims[i], letters[i][code[i]])
			}
		}
		seen[code] = true
	}
	if len(seen) != 16 {
		t.Errorf("distinct codes = %d, want 16", len(seen))
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("ZZZZ"); ok {
		t.Error("Lookup(ZZZZ) should miss")
	}
	if _, ok := Lookup(""); ok {
		t.Error("Lookup(\"\") should miss")
	}
	if _, ok := Lookup(" laef "); !ok {
		t.Error("Lookup should normalize case and spaces")
	}

	// 返回副本，修改不影响静态表
	p, _ := Lookup("LAEF")
	p.PreferredThemes[0] = "mutated"
	again, _ := Lookup("LAEF")
	if again.PreferredThemes[0] == "mutated" {
		t.Error("Lookup must return a copy")
	}

	d := LookupOrDefault("nope")
	if len(d.PreferredThemes) != 0 || len(d.AvoidThemes) != 0 {
		t.Errorf("default preferences should be neutral, got %+v", d)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		code string
		tags core.Tags
		want int
	}{
		{
			name: "caps and clamp",
			code: "LAEF",
			tags: core.Tags{
				Themes:  []string{"dreamscape", "emotion", "color"},
				Periods: []string{"surrealism", "fauvism"},
				Social:  core.SocialSolitary,
			},
			want: 100,
		},
		{
			name: "avoid penalty",
			code: "LAEF",
			tags: core.Tags{Themes: []string{"political"}, Social: core.SocialPublic},
			want: 40,
		},
		{
			name: "unknown code",
			code: "ZZZZ",
			tags: core.Tags{Themes: []string{"political", "religious-dogma"}, Social: core.SocialSolitary},
			want: 50,
		},
		{
			name: "empty tags",
			code: "LAEF",
			tags: core.Tags{},
			want: 50,
		},
		{
			name: "social public bonus",
			code: "SREF",
			tags: core.Tags{Themes: []string{"joy"}, Social: core.SocialPublic},
			want: 70,
		},
		{
			name: "social code ignores solitary",
			code: "SREF",
			tags: core.Tags{Social: core.SocialSolitary},
			want: 50,
		},
		{
			name: "duplicate avoid theme counted once",
			code: "LAEF",
			tags: core.Tags{Themes: []string{"political", "religious-dogma", "technical-precision", "political"}},
			want: 20,
		},
		{
			name: "theme cap without period",
			code: "LAEF",
			tags: core.Tags{Themes: []string{"dreamscape", "emotion", "color", "movement", "expression"}},
			want: 80,
		},
		{
			name: "lowercase code",
			code: "laef",
			tags: core.Tags{Themes: []string{"political"}},
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.code, tt.tags); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.code, got, tt.want)
			}
			// 幂等
			if got := Score(tt.code, tt.tags); got != tt.want {
				t.Errorf("second Score(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	vocab := []string{}
	for _, p := range profiles {
		vocab = append(vocab, p.PreferredThemes...)
		vocab = append(vocab, p.AvoidThemes...)
		vocab = append(vocab, p.PreferredPeriods...)
	}
	socials := []core.Social{core.SocialSolitary, core.SocialIntimate, core.SocialPublic, ""}

	for _, code := range append(Codes(), "ZZZZ") {
		for i := 0; i <= len(vocab); i += 3 {
			for _, s := range socials {
				tags := core.Tags{Themes: vocab[:i], Periods: vocab[:i], Social: s}
				got := Score(code, tags)
				if got < 0 || got > 100 {
					t.Fatalf("Score(%s, %d themes) = %d out of range", code, i, got)
				}
			}
		}
	}
}
