package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/rushteam/sayu/core"
)

// StoreLoader 从 core.Store 读取作品集。
//   - 如果 Store 实现了 KeyValueStore，优先读取 Hash：每个 field 是一条 JSON 作品记录
//   - Hash 为空或 Store 不支持时，从普通 key 读取 JSON 数组
type StoreLoader struct {
	Store      core.Store
	Key        string
	SourceName string
	SourceKind core.SourceKind
}

func (l *StoreLoader) Name() string {
	if l.SourceName != "" {
		return l.SourceName
	}
	return l.Store.Name() + ":" + l.Key
}

func (l *StoreLoader) Kind() core.SourceKind {
	if l.SourceKind == "" {
		return core.SourceCatalog
	}
	return l.SourceKind
}

func (l *StoreLoader) Load(ctx context.Context) ([]Record, error) {
	if l.Store == nil || l.Key == "" {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: store loader needs store and key")
	}

	if kv, ok := l.Store.(core.KeyValueStore); ok {
		fields, err := kv.HGetAll(ctx, l.Key)
		if err == nil && len(fields) > 0 {
			return decodeHash(fields)
		}
	}

	data, err := l.Store.Get(ctx, l.Key)
	if err != nil {
		return nil, fmt.Errorf("store get %s: %w", l.Key, err)
	}
	return Decode(data, FormatJSON)
}

// decodeHash 按 field 排序解码，保证多次加载顺序一致。
func decodeHash(fields map[string][]byte) ([]Record, error) {
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)

	out := make([]Record, 0, len(names))
	for _, f := range names {
		var rec Record
		if err := json.Unmarshal(fields[f], &rec); err != nil {
			return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: decode field %s", f), err)
		}
		if rec.String("id") == "" {
			rec["id"] = f
		}
		out = append(out, rec)
	}
	return out, nil
}
