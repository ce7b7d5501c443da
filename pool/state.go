package pool

import (
	"strings"

	"github.com/rushteam/sayu/core"
)

// state 是一次构建的不可变结果：作品池加上查询索引。
type state struct {
	pool         *core.Pool
	byTheme      map[string][]*core.Artwork
	byMood       map[string][]*core.Artwork
	byComplexity map[core.Complexity][]*core.Artwork
}

func newState(p *core.Pool) *state {
	st := &state{
		pool:         p,
		byTheme:      make(map[string][]*core.Artwork),
		byMood:       make(map[string][]*core.Artwork),
		byComplexity: make(map[core.Complexity][]*core.Artwork),
	}
	for _, a := range p.Artworks {
		for _, t := range a.Themes {
			key := strings.ToLower(t)
			st.byTheme[key] = append(st.byTheme[key], a)
		}
		for _, m := range a.Mood {
			key := strings.ToLower(m)
			st.byMood[key] = append(st.byMood[key], a)
		}
		st.byComplexity[a.Complexity] = append(st.byComplexity[a.Complexity], a)
	}
	return st
}
