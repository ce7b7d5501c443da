package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rushteam/sayu/core"
)

// HTTPLoader 从 HTTP 接口加载 JSON 作品集。
//
// 用法：
//
//	loader := catalog.NewHTTPLoader("curated", "https://cdn.example.com/curated.json", core.SourceCurated, 5*time.Second)
type HTTPLoader struct {
	SourceName string
	URL        string
	SourceKind core.SourceKind
	client     *http.Client
}

// NewHTTPLoader 创建 HTTP 加载器，timeout 为 0 时默认 10s。
func NewHTTPLoader(name, url string, kind core.SourceKind, timeout time.Duration) *HTTPLoader {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return NewHTTPLoaderWithClient(name, url, kind, &http.Client{Timeout: timeout})
}

// NewHTTPLoaderWithClient 使用自定义 HTTP 客户端创建加载器
func NewHTTPLoaderWithClient(name, url string, kind core.SourceKind, client *http.Client) *HTTPLoader {
	return &HTTPLoader{SourceName: name, URL: url, SourceKind: kind, client: client}
}

func (l *HTTPLoader) Name() string { return l.SourceName }

func (l *HTTPLoader) Kind() core.SourceKind {
	if l.SourceKind == "" {
		return core.SourceCatalog
	}
	return l.SourceKind
}

func (l *HTTPLoader) Load(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get %s: %w", l.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeUnavailable,
			fmt.Sprintf("catalog: %s returned status %d", l.URL, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return Decode(body, FormatJSON)
}
