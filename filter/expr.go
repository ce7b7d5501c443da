package filter

import (
	"context"

	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述需要剔除的作品，例如：
//
//	artwork.source == "catalog" && artwork.year == ""
//	"violence" in artwork.themes
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式，编译失败时返回错误。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Artwork == nil {
		return true, nil
	}
	return f.program.Match(item, rctx)
}
