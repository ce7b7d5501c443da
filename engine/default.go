package engine

import (
	"sync"

	"github.com/rushteam/sayu/catalog"
	"github.com/rushteam/sayu/pool"
)

// 进程级默认引擎：首次使用时构建，可显式替换或重置（测试中注入新实例）。
var (
	defaultMu     sync.Mutex
	defaultEngine *Engine
)

// Default 返回进程级默认引擎，首次调用时用内置精选集构建。
func Default() *Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEngine == nil {
		defaultEngine = New(pool.New([]catalog.Loader{catalog.CuratedPublicDomain()}))
	}
	return defaultEngine
}

// SetDefault 替换默认引擎，返回之前的实例（可能为 nil）。
func SetDefault(e *Engine) *Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultEngine
	defaultEngine = e
	return prev
}

// ResetDefault 丢弃默认引擎，下次 Default 时重新构建。
func ResetDefault() {
	SetDefault(nil)
}
