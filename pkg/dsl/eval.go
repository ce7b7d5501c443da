// Package dsl 提供基于 CEL (Common Expression Language) 的作品规则表达式。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pkg/utils"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("artwork", cel.DynType),
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译后的规则表达式，可并发复用。
//
// 可用变量：
//   - artwork.title / artist / year / medium / period / source / complexity
//   - artwork.themes / artwork.mood（字符串列表）
//   - item.score / item.id
//   - label.<key>（作品标签的 value）
//   - rctx.code / rctx.scene / rctx.params
//
// 示例：
//   - `"violence" in artwork.themes`
//   - `artwork.source == "catalog" && artwork.year == ""`
//   - `rctx.code == "LRMC" && artwork.complexity == "simple"`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("expression must return boolean, got %v", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式
func (p *Program) String() string { return p.expr }

// Match 在 item / rctx 上执行表达式。
func (p *Program) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会返回错误，调用方应使用 has() 判断存在性
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	artwork := map[string]any{}
	itemMap := map[string]any{}
	labels := map[string]string{}

	if item != nil {
		itemMap["id"] = item.ID
		itemMap["score"] = item.Score
		labels = utils.Values(item.Labels)
		if a := item.Artwork; a != nil {
			artwork = map[string]any{
				"id":         a.ID,
				"title":      a.Title,
				"artist":     a.Artist,
				"year":       a.Year,
				"medium":     a.Medium,
				"period":     a.Period,
				"source":     string(a.Source),
				"complexity": string(a.Complexity),
				"themes":     nonNil(a.Themes),
				"mood":       nonNil(a.Mood),
			}
		}
	}

	rctxMap := map[string]any{
		"code":   "",
		"scene":  "",
		"params": map[string]any{},
	}
	if rctx != nil {
		rctxMap["code"] = rctx.Code()
		rctxMap["scene"] = rctx.Scene
		if rctx.Params != nil {
			rctxMap["params"] = rctx.Params
		}
	}

	return map[string]any{
		"artwork": artwork,
		"item":    itemMap,
		"label":   labels,
		"rctx":    rctxMap,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
