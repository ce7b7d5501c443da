package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rushteam/sayu/core"
)

// FileLoader 从本地 JSON/YAML 文件加载作品集，通常用于批量导入的馆藏目录。
type FileLoader struct {
	Path       string
	SourceName string // 为空时使用文件名
	SourceKind core.SourceKind
	Format     Format // 为空时按扩展名推断
}

func (l *FileLoader) Name() string {
	if l.SourceName != "" {
		return l.SourceName
	}
	return strings.TrimSuffix(filepath.Base(l.Path), filepath.Ext(l.Path))
}

func (l *FileLoader) Kind() core.SourceKind {
	if l.SourceKind == "" {
		return core.SourceCatalog
	}
	return l.SourceKind
}

func (l *FileLoader) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	format := l.Format
	if format == "" {
		format = FormatFromPath(l.Path)
	}
	return Decode(data, format)
}
