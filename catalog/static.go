package catalog

import (
	"context"

	"github.com/rushteam/sayu/core"
)

// StaticLoader 返回内存中的固定记录，用于内置精选集与测试。
type StaticLoader struct {
	SourceName string
	SourceKind core.SourceKind
	Records    []Record
}

func (l *StaticLoader) Name() string { return l.SourceName }

func (l *StaticLoader) Kind() core.SourceKind {
	if l.SourceKind == "" {
		return core.SourceManual
	}
	return l.SourceKind
}

func (l *StaticLoader) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Record, len(l.Records))
	copy(out, l.Records)
	return out, nil
}

// CuratedPublicDomain 返回内置的小型公有领域精选集。
func CuratedPublicDomain() *StaticLoader {
	return &StaticLoader{
		SourceName: "curated-public-domain",
		SourceKind: core.SourceCurated,
		Records:    curatedRecords,
	}
}

var curatedRecords = []Record{
	{
		"title": "The Starry Night", "artist": "Vincent van Gogh", "year": 1889,
		"medium": "oil on canvas", "period": "post-impressionism",
		"themes": []any{"dreamscape", "emotion", "movement", "night", "color"},
		"mood":   []any{"turbulent", "wonder"}, "social": "solitary",
	},
	{
		"title": "Water Lilies", "artist": "Claude Monet", "year": 1906,
		"medium": "oil on canvas", "period": "impressionism",
		"themes": []any{"nature", "light", "meditation"},
		"mood":   []any{"serene"}, "social": "solitary",
	},
	{
		"title": "Girl with a Pearl Earring", "artist": "Johannes Vermeer", "year": 1665,
		"medium": "oil on canvas", "period": "dutch-golden-age",
		"themes": []any{"portrait", "intimacy", "light", "detail"},
		"mood":   []any{"mysterious", "calm"}, "social": "intimate",
	},
	{
		"title": "The Great Wave off Kanagawa", "artist": "Katsushika Hokusai", "year": 1831,
		"medium": "woodblock print", "period": "ukiyo-e",
		"themes": []any{"nature", "movement", "pattern"},
		"mood":   []any{"dramatic"}, "social": "public",
	},
	{
		"title": "Composition VIII", "artist": "Wassily Kandinsky", "year": 1923,
		"medium": "oil on canvas", "period": "abstract-art",
		"themes": []any{"geometry", "rhythm", "music", "color", "structure"},
		"mood":   []any{"energetic"}, "social": "solitary",
	},
	{
		"title": "Bal du moulin de la Galette", "artist": "Pierre-Auguste Renoir", "year": 1876,
		"medium": "oil on canvas", "period": "impressionism",
		"themes": []any{"people", "celebration", "daily-life", "joy", "light"},
		"mood":   []any{"joyful"}, "social": "public",
	},
	{
		"title": "The School of Athens", "artist": "Raphael", "year": 1511,
		"medium": "fresco", "period": "renaissance",
		"themes": []any{"philosophy", "architecture", "history", "perspective"},
		"mood":   []any{"contemplative"}, "social": "public",
	},
	{
		"title": "Wanderer above the Sea of Fog", "artist": "Caspar David Friedrich", "year": 1818,
		"medium": "oil on canvas", "period": "romanticism",
		"themes": []any{"solitude", "landscape", "nature", "sublime"},
		"mood":   []any{"contemplative", "melancholy"}, "social": "solitary",
	},
	{
		"title": "Liberty Leading the People", "artist": "Eugène Delacroix", "year": 1830,
		"medium": "oil on canvas", "period": "romanticism",
		"themes": []any{"political", "history", "people", "society"},
		"mood":   []any{"heroic"}, "social": "public",
	},
	{
		"title": "The Night Watch", "artist": "Rembrandt van Rijn", "year": 1642,
		"medium": "oil on canvas", "period": "dutch-golden-age",
		"themes": []any{"people", "light", "history", "community"},
		"mood":   []any{"dramatic"}, "social": "public",
	},
	{
		"title": "Irises", "artist": "Vincent van Gogh", "year": 1889,
		"medium": "oil on canvas", "period": "post-impressionism",
		"themes": []any{"nature", "color", "expression"},
		"mood":   []any{"vibrant"}, "social": "solitary",
	},
	{
		"title": "Mont Sainte-Victoire", "artist": "Paul Cézanne", "year": 1904,
		"medium": "oil on canvas", "period": "post-impressionism",
		"themes": []any{"landscape", "structure", "geometry"},
		"mood":   []any{"calm"}, "social": "solitary",
	},
	{
		"title": "Winter Landscape", "artist": "Jeong Seon", "year": 1740,
		"medium": "ink on paper", "period": "joseon",
		"themes": []any{"landscape", "tradition", "nature"},
		"mood":   []any{"serene"}, "social": "solitary",
	},
	{
		"title": "Broadway Boogie Woogie", "artist": "Piet Mondrian", "year": 1943,
		"medium": "oil on canvas", "period": "de-stijl",
		"themes": []any{"geometry", "rhythm", "music", "pattern", "order"},
		"mood":   []any{"energetic"}, "social": "public",
	},
}
