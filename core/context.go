package core

import (
	"strings"

	"github.com/rushteam/sayu/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string // personalized / theme / artist / mood

	// PersonalityCode 是四字母人格代码，如 LAEF；可以为任意字符串，未知代码按中性处理
	PersonalityCode string

	// Count 请求的推荐条数
	Count int

	// MaxPerArtist 同一艺术家最多出现次数（0 表示使用默认值）
	MaxPerArtist int

	// Labels 是请求级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数，例如 theme / artist / mood 查询值
	Params map[string]any
}

// Code 返回规范化后的人格代码（去空白、大写）。
func (rctx *RecommendContext) Code() string {
	if rctx == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(rctx.PersonalityCode))
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// Param 按 key 读取字符串参数。
func (rctx *RecommendContext) Param(key string) string {
	if rctx == nil || rctx.Params == nil {
		return ""
	}
	s, _ := rctx.Params[key].(string)
	return s
}
