package catalog

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/sayu/core"
)

// Format 是作品集文件格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath 根据扩展名推断格式，默认 JSON。
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// collectionKeys 是包裹对象中可能承载作品列表的字段。
var collectionKeys = []string{"artworks", "items", "data", "objects"}

// Decode 解析作品集：既接受顶层数组，也接受 {"artworks": [...]} 这类包裹对象。
func Decode(data []byte, format Format) ([]Record, error) {
	var raw any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
			fmt.Sprintf("catalog: parse %s", format), err)
	}

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return toRecords(v), nil
	case map[string]any:
		for _, k := range collectionKeys {
			if list, ok := v[k].([]any); ok {
				return toRecords(list), nil
			}
		}
	}
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
		"catalog: expected a list of artworks")
}

func toRecords(list []any) []Record {
	out := make([]Record, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}
