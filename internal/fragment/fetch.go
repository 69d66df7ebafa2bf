package fragment

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// Fetcher retrieves the raw markup of a named fragment.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, name string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// FileName is the well-known file a fragment name resolves to.
func FileName(name string) string {
	return name + ".html"
}

// FSFetcher reads fragments from Dir/<name>.html inside a file system.
type FSFetcher struct {
	FS  fs.FS
	Dir string
}

func (f FSFetcher) Fetch(_ context.Context, name string) (string, error) {
	data, err := fs.ReadFile(f.FS, path.Join(f.Dir, FileName(name)))
	if err != nil {
		return "", fmt.Errorf("reading fragment %s: %w", name, err)
	}
	return string(data), nil
}

// HTTPFetcher requests <BaseURL>/components/<name>.html.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns a fetcher with its own client and timeout.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) (string, error) {
	url := f.BaseURL + "/components/" + FileName(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", name, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching fragment %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching fragment %s: unexpected status %s", name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading fragment %s: %w", name, err)
	}
	return string(body), nil
}
