// Package postprocess 把候选作品注解为展示层使用的推荐条目：匹配度、策展短评、分类、描述。
package postprocess

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/personality"
	"github.com/rushteam/sayu/pipeline"
	"github.com/rushteam/sayu/pkg/utils"
)

// 匹配度常量。
const (
	BaseMatchPercent = 85
	MinMatchPercent  = 75
	MaxMatchPercent  = 98

	curatedBonus  = 5
	richThemes    = 3 // 主题数超过该值加分
	richBonus     = 3
	affinityBonus = 5
	jitterSpan    = 3
)

// highAffinityCodes 与作品池整体风格最契合的人格代码。
var highAffinityCodes = map[string]struct{}{
	"LAEF": {},
	"SREF": {},
	"LAMF": {},
	"SAEF": {},
}

// MetaKey 是 AnnotateNode 写入 item.Meta 的推荐条目 key。
const MetaKey = "recommendation"

// Annotator 生成推荐条目。随机性（匹配度抖动、短评模板）来自注入的随机源。
type Annotator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAnnotator 创建 Annotator；rng 为 nil 时使用按时间播种的随机源。
func NewAnnotator(rng *rand.Rand) *Annotator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Annotator{rng: rng}
}

// HighAffinity 报告人格代码是否属于高契合代码。
func HighAffinity(code string) bool {
	_, ok := highAffinityCodes[personality.Normalize(code)]
	return ok
}

// MatchPercent 计算展示用匹配度，结果在 [75,98]。
func (an *Annotator) MatchPercent(a *core.Artwork, code string) int {
	p := BaseMatchPercent
	if a != nil {
		if a.Source == core.SourceCurated || a.Source == core.SourceManual {
			p += curatedBonus
		}
		if len(a.Themes) > richThemes {
			p += richBonus
		}
	}
	if HighAffinity(code) {
		p += affinityBonus
	}
	p += an.intN(2*jitterSpan+1) - jitterSpan
	return max(MinMatchPercent, min(p, MaxMatchPercent))
}

// CuratorNote 在作品适用的模板中随机选一个。
func (an *Annotator) CuratorNote(a *core.Artwork) string {
	if a == nil {
		return NoteGeneric.render(&core.Artwork{})
	}
	kinds := make([]NoteKind, 0, len(noteKinds))
	for _, k := range noteKinds {
		if k.applicable(a) {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return NoteGeneric.render(a)
	}
	return kinds[an.intN(len(kinds))].render(a)
}

// Annotate 把作品转换成推荐条目。
func (an *Annotator) Annotate(a *core.Artwork, code string) core.Recommendation {
	if a == nil {
		a = &core.Artwork{}
	}
	return core.Recommendation{
		Title:        a.Title,
		Artist:       a.Artist,
		Year:         a.Year,
		Description:  Describe(a),
		Category:     CategoryNames(a),
		Image:        a.ImageURL,
		MatchPercent: an.MatchPercent(a, code),
		CuratorNote:  an.CuratorNote(a),
		Source:       a.Source,
		OriginalData: a.OriginalData,
	}
}

func (an *Annotator) intN(n int) int {
	an.mu.Lock()
	defer an.mu.Unlock()
	return an.rng.IntN(n)
}

// Describe 优先使用原始记录里的描述，否则由标题、艺术家、年份、媒介拼出一句。
func Describe(a *core.Artwork) string {
	if a.OriginalData != nil {
		for _, k := range []string{"description", "summary"} {
			if s, ok := a.OriginalData[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	var b strings.Builder
	b.WriteString(a.Title)
	if a.Artist != "" {
		fmt.Fprintf(&b, " by %s", a.Artist)
	}
	if a.Year != "" {
		fmt.Fprintf(&b, " (%s)", a.Year)
	}
	if a.Medium != "" && a.Medium != unknownMedium {
		fmt.Fprintf(&b, ", %s", strings.ToLower(a.Medium))
	}
	b.WriteString(".")
	return b.String()
}

// AnnotateNode 是 PostProcess Node：为每个 Item 生成推荐条目写入 Meta[MetaKey]，
// 并写入 label：match_percent、category。
type AnnotateNode struct {
	Annotator *Annotator
}

func (n *AnnotateNode) Name() string        { return "postprocess.annotate" }
func (n *AnnotateNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *AnnotateNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	an := n.Annotator
	if an == nil {
		an = NewAnnotator(nil)
	}
	code := rctx.Code()
	for _, it := range items {
		if it == nil {
			continue
		}
		rec := an.Annotate(it.Artwork, code)
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta[MetaKey] = rec
		it.PutLabel("match_percent", utils.Label{Value: strconv.Itoa(rec.MatchPercent), Source: "postprocess"})
		it.PutLabel("category", utils.Label{Value: strings.Join(rec.Category, ","), Source: "postprocess"})
	}
	return items, nil
}

// Recommendations 取出 AnnotateNode 写入的推荐条目，保持 items 顺序。
func Recommendations(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil || it.Meta == nil {
			continue
		}
		if rec, ok := it.Meta[MetaKey].(core.Recommendation); ok {
			out = append(out, rec)
		}
	}
	return out
}
