package postprocess

import (
	"fmt"
	"strings"

	"github.com/rushteam/sayu/core"
)

// NoteKind 选择策展人短评的模板。
type NoteKind int

const (
	NoteTheme NoteKind = iota
	NoteMood
	NoteArtist
	NoteMedium
	NoteGeneric
)

func (k NoteKind) String() string {
	switch k {
	case NoteTheme:
		return "theme"
	case NoteMood:
		return "mood"
	case NoteArtist:
		return "artist"
	case NoteMedium:
		return "medium"
	case NoteGeneric:
		return "generic"
	default:
		return "generic"
	}
}

// applicable 报告作品是否有该模板需要的字段。
func (k NoteKind) applicable(a *core.Artwork) bool {
	switch k {
	case NoteTheme:
		return len(a.Themes) > 0
	case NoteMood:
		return len(a.Mood) > 0
	case NoteArtist:
		return strings.TrimSpace(a.Artist) != ""
	case NoteMedium:
		return a.Medium != "" && a.Medium != unknownMedium
	case NoteGeneric:
		return true
	default:
		return false
	}
}

func (k NoteKind) render(a *core.Artwork) string {
	switch k {
	case NoteTheme:
		return fmt.Sprintf("A meditation on %s that rewards a slow, second look.", joinWords(a.Themes, 2))
	case NoteMood:
		return fmt.Sprintf("Its %s mood lingers long after you step away.", joinWords(a.Mood, 2))
	case NoteArtist:
		return fmt.Sprintf("%s at their most distinctive: notice how every detail serves the whole.", a.Artist)
	case NoteMedium:
		return fmt.Sprintf("Look closely at the %s; the surface tells its own story.", strings.ToLower(a.Medium))
	case NoteGeneric:
		return "A work chosen to widen your view of what art can be."
	default:
		return "A work chosen to widen your view of what art can be."
	}
}

var noteKinds = []NoteKind{NoteTheme, NoteMood, NoteArtist, NoteMedium}

const unknownMedium = "unknown"

func joinWords(words []string, limit int) string {
	if len(words) > limit {
		words = words[:limit]
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ReplaceAll(w, "-", " ")
	}
	return strings.Join(out, " and ")
}
