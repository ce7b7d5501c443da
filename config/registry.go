package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/sayu/pipeline"
)

// 扩展 Node 在 init 中调用 Register 即可被配置驱动，例如：
//
//	func init() { config.Register("filter.seen", BuildSeenFilter) }

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
type NodeBuilder = pipeline.NodeBuilder

var (
	extraBuilders   = make(map[string]NodeBuilder)
	extraBuildersMu sync.RWMutex
)

// Register 注册一种扩展 Node 的构建逻辑，NewFactory 会一并注册。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	extraBuildersMu.Lock()
	defer extraBuildersMu.Unlock()
	extraBuilders[typeName] = builder
}

func registered(fn func(string, NodeBuilder)) {
	extraBuildersMu.RLock()
	defer extraBuildersMu.RUnlock()
	for typeName, builder := range extraBuilders {
		fn(typeName, builder)
	}
}

// SupportedTypes 返回内置与已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	seen := make(map[string]struct{}, len(builtinTypes))
	types := make([]string, 0, len(builtinTypes))
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	for _, t := range builtinTypes {
		add(t)
	}
	registered(func(t string, _ NodeBuilder) { add(t) })
	sort.Strings(types)
	return types
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均受支持；若有未支持类型则返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	supported := SupportedTypes()
	for _, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			return fmt.Errorf("node type is empty (supported: %v)", supported)
		}
		idx := sort.SearchStrings(supported, nc.Type)
		if idx >= len(supported) || supported[idx] != nc.Type {
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, supported)
		}
	}
	return nil
}
