package pipeline

import (
	"context"

	"github.com/rushteam/sayu/core"
)

// Kind 标记 Node 所处的阶段，用于日志与错误信息。
type Kind string

const (
	KindRecall      Kind = "recall"      // 从作品池取候选：人格匹配、随机探索、主题/艺术家/情绪查询
	KindRank        Kind = "rank"        // 按人格匹配分打分
	KindFilter      Kind = "filter"      // 去重、黑名单、表达式剔除
	KindReRank      Kind = "rerank"      // 艺术家限流、截断
	KindPostProcess Kind = "postprocess" // 生成匹配度、短评与分类
)

// Node 是 Pipeline 的最小单元，统一为“输入 items -> 输出 items”。
// rctx 在整条链路上共享，Node 可以读取其中的人格代码与查询参数，也可以写请求级 Label。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeFunc 把一个函数包装成 Node，适合一次性的轻量逻辑。
type NodeFunc struct {
	NodeName string
	NodeKind Kind
	Fn       func(ctx context.Context, rctx *core.RecommendContext, items []*core.Item) ([]*core.Item, error)
}

func (n NodeFunc) Name() string { return n.NodeName }
func (n NodeFunc) Kind() Kind   { return n.NodeKind }

func (n NodeFunc) Process(ctx context.Context, rctx *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.Fn(ctx, rctx, items)
}
