// Package catalog 负责从各个作品来源加载原始记录，并归一化为 core.Artwork。
//
// 来源只保证每条记录至少有 title 与 artist；其余字段缺失时填默认值而不是省略，
// 因为下游代码会无条件读取它们。
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pkg/conv"
)

// Record 是来源返回的一条原始作品记录（JSON/YAML 对象）。
type Record map[string]any

// Loader 表示一个可独立加载的作品来源。
type Loader interface {
	// Name 返回来源名称（用于统计、日志与降级标记）
	Name() string

	// Kind 返回来源类别
	Kind() core.SourceKind

	// Load 加载全部原始记录
	Load(ctx context.Context) ([]Record, error)
}

// String 按候选 key 依次读取字符串字段。
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := conv.ToString(v); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		if f, ok := conv.ToFloat64(v); ok {
			return fmt.Sprintf("%.0f", f)
		}
	}
	return ""
}

// Strings 按候选 key 读取字符串列表；也接受逗号分隔的单个字符串。
func (r Record) Strings(keys ...string) []string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case []string:
			return cleanList(val)
		case []any:
			return cleanList(conv.SliceAnyToString(val))
		case string:
			return cleanList(strings.Split(val, ","))
		}
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
