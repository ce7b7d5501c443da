// Package personality 定义 16 种人格代码及其审美偏好，并提供作品匹配打分。
//
// 人格代码由四个维度的字母拼接而成：
//   - 观看方式：L（独处 alone） / S（社交 social）
//   - 作品类型：A（抽象 abstract） / R（具象 representational）
//   - 欣赏路径：E（情感 emotional） / M（理性 intellectual）
//   - 信息处理：F（自由 free） / C（系统 systematic）
package personality

import "strings"

type ViewingStyle string

const (
	ViewingAlone  ViewingStyle = "alone"
	ViewingSocial ViewingStyle = "social"
)

type ArtType string

const (
	ArtAbstract         ArtType = "abstract"
	ArtRepresentational ArtType = "representational"
)

type Approach string

const (
	ApproachEmotional    Approach = "emotional"
	ApproachIntellectual Approach = "intellectual"
)

type Processing string

const (
	ProcessingFree       Processing = "free"
	ProcessingSystematic Processing = "systematic"
)

// Preferences 是单个人格代码的偏好向量。编译期静态数据，调用方拿到的是副本。
type Preferences struct {
	ViewingStyle     ViewingStyle `json:"viewing_style"`
	ArtType          ArtType      `json:"art_type"`
	Approach         Approach     `json:"approach"`
	Processing       Processing   `json:"processing"`
	PreferredThemes  []string     `json:"preferred_themes"`
	PreferredPeriods []string     `json:"preferred_periods"`
	AvoidThemes      []string     `json:"avoid_themes"`
}

func (p Preferences) clone() Preferences {
	p.PreferredThemes = append([]string(nil), p.PreferredThemes...)
	p.PreferredPeriods = append([]string(nil), p.PreferredPeriods...)
	p.AvoidThemes = append([]string(nil), p.AvoidThemes...)
	return p
}

// codes 固定顺序，便于遍历与测试。
var codes = []string{
	"LAEF", "LAEC", "LAMF", "LAMC",
	"LREF", "LREC", "LRMF", "LRMC",
	"SAEF", "SAEC", "SAMF", "SAMC",
	"SREF", "SREC", "SRMF", "SRMC",
}

var profiles = map[string]Preferences{
	"LAEF": {
		ViewingStyle: ViewingAlone, ArtType: ArtAbstract, Approach: ApproachEmotional, Processing: ProcessingFree,
		PreferredThemes:  []string{"dreamscape", "emotion", "color", "movement", "expression"},
		PreferredPeriods: []string{"abstract-expressionism", "surrealism", "fauvism"},
		AvoidThemes:      []string{"political", "religious-dogma", "technical-precision"},
	},
	"LAEC": {
		ViewingStyle: ViewingAlone, ArtType: ArtAbstract, Approach: ApproachEmotional, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"harmony", "color", "rhythm", "meditation", "pattern"},
		PreferredPeriods: []string{"color-field", "minimalism", "orphism"},
		AvoidThemes:      []string{"chaos", "violence", "narrative"},
	},
	"LAMF": {
		ViewingStyle: ViewingAlone, ArtType: ArtAbstract, Approach: ApproachIntellectual, Processing: ProcessingFree,
		PreferredThemes:  []string{"concept", "philosophy", "experiment", "symbolism", "ambiguity"},
		PreferredPeriods: []string{"conceptual-art", "dada", "surrealism"},
		AvoidThemes:      []string{"decorative", "sentimental", "commercial"},
	},
	"LAMC": {
		ViewingStyle: ViewingAlone, ArtType: ArtAbstract, Approach: ApproachIntellectual, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"geometry", "structure", "pattern", "order", "mathematics"},
		PreferredPeriods: []string{"constructivism", "de-stijl", "bauhaus", "minimalism"},
		AvoidThemes:      []string{"chaos", "sentimental", "improvisation"},
	},
	"LREF": {
		ViewingStyle: ViewingAlone, ArtType: ArtRepresentational, Approach: ApproachEmotional, Processing: ProcessingFree,
		PreferredThemes:  []string{"nature", "light", "solitude", "landscape", "nostalgia"},
		PreferredPeriods: []string{"impressionism", "romanticism", "post-impressionism"},
		AvoidThemes:      []string{"violence", "political", "urban-chaos"},
	},
	"LREC": {
		ViewingStyle: ViewingAlone, ArtType: ArtRepresentational, Approach: ApproachEmotional, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"portrait", "detail", "intimacy", "still-life", "domestic"},
		PreferredPeriods: []string{"dutch-golden-age", "realism", "pre-raphaelite"},
		AvoidThemes:      []string{"chaos", "abstraction", "provocation"},
	},
	"LRMF": {
		ViewingStyle: ViewingAlone, ArtType: ArtRepresentational, Approach: ApproachIntellectual, Processing: ProcessingFree,
		PreferredThemes:  []string{"symbolism", "mythology", "allegory", "mystery", "narrative"},
		PreferredPeriods: []string{"symbolism", "surrealism", "magic-realism"},
		AvoidThemes:      []string{"decorative", "commercial", "repetition"},
	},
	"LRMC": {
		ViewingStyle: ViewingAlone, ArtType: ArtRepresentational, Approach: ApproachIntellectual, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"history", "technique", "perspective", "architecture", "technical-precision"},
		PreferredPeriods: []string{"renaissance", "baroque", "neoclassicism"},
		AvoidThemes:      []string{"chaos", "improvisation", "sentimental"},
	},
	"SAEF": {
		ViewingStyle: ViewingSocial, ArtType: ArtAbstract, Approach: ApproachEmotional, Processing: ProcessingFree,
		PreferredThemes:  []string{"energy", "color", "celebration", "movement", "music"},
		PreferredPeriods: []string{"pop-art", "fauvism", "abstract-expressionism"},
		AvoidThemes:      []string{"melancholy", "solitude", "austerity"},
	},
	"SAEC": {
		ViewingStyle: ViewingSocial, ArtType: ArtAbstract, Approach: ApproachEmotional, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"harmony", "pattern", "color", "design", "rhythm"},
		PreferredPeriods: []string{"op-art", "art-deco", "bauhaus"},
		AvoidThemes:      []string{"violence", "chaos", "darkness"},
	},
	"SAMF": {
		ViewingStyle: ViewingSocial, ArtType: ArtAbstract, Approach: ApproachIntellectual, Processing: ProcessingFree,
		PreferredThemes:  []string{"concept", "provocation", "experiment", "society", "irony"},
		PreferredPeriods: []string{"contemporary", "conceptual-art", "dada"},
		AvoidThemes:      []string{"traditional", "sentimental", "decorative"},
	},
	"SAMC": {
		ViewingStyle: ViewingSocial, ArtType: ArtAbstract, Approach: ApproachIntellectual, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"structure", "system", "geometry", "architecture", "innovation"},
		PreferredPeriods: []string{"bauhaus", "constructivism", "minimalism"},
		AvoidThemes:      []string{"chaos", "sentimental", "religious-dogma"},
	},
	"SREF": {
		ViewingStyle: ViewingSocial, ArtType: ArtRepresentational, Approach: ApproachEmotional, Processing: ProcessingFree,
		PreferredThemes:  []string{"people", "celebration", "daily-life", "joy", "light"},
		PreferredPeriods: []string{"impressionism", "post-impressionism", "rococo"},
		AvoidThemes:      []string{"violence", "darkness", "austerity"},
	},
	"SREC": {
		ViewingStyle: ViewingSocial, ArtType: ArtRepresentational, Approach: ApproachEmotional, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"family", "tradition", "portrait", "domestic", "community"},
		PreferredPeriods: []string{"realism", "dutch-golden-age", "joseon"},
		AvoidThemes:      []string{"provocation", "chaos", "abstraction"},
	},
	"SRMF": {
		ViewingStyle: ViewingSocial, ArtType: ArtRepresentational, Approach: ApproachIntellectual, Processing: ProcessingFree,
		PreferredThemes:  []string{"society", "narrative", "satire", "history", "political"},
		PreferredPeriods: []string{"social-realism", "expressionism", "contemporary"},
		AvoidThemes:      []string{"decorative", "escapism", "sentimental"},
	},
	"SRMC": {
		ViewingStyle: ViewingSocial, ArtType: ArtRepresentational, Approach: ApproachIntellectual, Processing: ProcessingSystematic,
		PreferredThemes:  []string{"history", "religion", "architecture", "technique", "mythology"},
		PreferredPeriods: []string{"renaissance", "baroque", "neoclassicism"},
		AvoidThemes:      []string{"chaos", "improvisation", "provocation"},
	},
}

// defaultPreferences 在代码未知时使用：不偏好任何主题，也不回避任何主题。
var defaultPreferences = Preferences{
	ViewingStyle: ViewingAlone,
	ArtType:      ArtRepresentational,
	Approach:     ApproachEmotional,
	Processing:   ProcessingFree,
}

// Normalize 去掉空白并转大写，便于接受 "laef" 这类输入。
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup 返回人格代码对应的偏好。代码不在 16 个定义值之内时返回 false，调用方需自行兜底。
func Lookup(code string) (Preferences, bool) {
	p, ok := profiles[Normalize(code)]
	if !ok {
		return Preferences{}, false
	}
	return p.clone(), true
}

// LookupOrDefault 查不到时返回中性默认偏好。
func LookupOrDefault(code string) Preferences {
	if p, ok := Lookup(code); ok {
		return p
	}
	return Default()
}

// Default 返回中性默认偏好。
func Default() Preferences {
	return defaultPreferences.clone()
}

// Known 报告代码是否在 16 个定义值之内。
func Known(code string) bool {
	_, ok := profiles[Normalize(code)]
	return ok
}

// Codes 按固定顺序返回全部 16 个人格代码。
func Codes() []string {
	return append([]string(nil), codes...)
}
