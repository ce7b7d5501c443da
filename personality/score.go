package personality

import "github.com/rushteam/sayu/core"

// 打分常量。
const (
	NeutralScore = 50

	themeWeight  = 10
	themeCap     = 30
	periodWeight = 10
	periodCap    = 20
	avoidPenalty = 10
	socialBonus  = 10
	minScore     = 0
	maxScore     = 100
)

// Score 计算作品标签与人格代码的匹配分，结果在 [0,100]。
//
// 算法：
//   - 未知代码直接返回 50
//   - 基础分 50
//   - 偏好主题命中数 * 10，上限 30
//   - 偏好时期命中数 * 10，上限 20
//   - 回避主题命中数 * 10 扣分，不设上限
//   - alone+solitary 或 social+public 加 10
//   - 最后截断到 [0,100]
func Score(code string, tags core.Tags) int {
	prefs, ok := profiles[Normalize(code)]
	if !ok {
		return NeutralScore
	}

	score := NeutralScore
	score += min(countMatches(tags.Themes, prefs.PreferredThemes)*themeWeight, themeCap)
	score += min(countMatches(tags.Periods, prefs.PreferredPeriods)*periodWeight, periodCap)
	score -= countMatches(tags.Themes, prefs.AvoidThemes) * avoidPenalty

	if (prefs.ViewingStyle == ViewingAlone && tags.Social == core.SocialSolitary) ||
		(prefs.ViewingStyle == ViewingSocial && tags.Social == core.SocialPublic) {
		score += socialBonus
	}

	return max(minScore, min(score, maxScore))
}

// ScoreArtwork 对作品的 Tags 打分，nil 作品视为中性。
func ScoreArtwork(code string, a *core.Artwork) int {
	if a == nil {
		return NeutralScore
	}
	return Score(code, a.Tags)
}

// countMatches 统计 values 中落在 set 里的元素个数，values 内部重复只算一次。
func countMatches(values, set []string) int {
	if len(values) == 0 || len(set) == 0 {
		return 0
	}
	lookup := make(map[string]struct{}, len(set))
	for _, s := range set {
		lookup[s] = struct{}{}
	}
	seen := make(map[string]struct{}, len(values))
	n := 0
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := lookup[v]; ok {
			n++
		}
	}
	return n
}
