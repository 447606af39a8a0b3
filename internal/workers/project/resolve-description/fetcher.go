// internal/workers/project/resolve-description/fetcher.go
package resolvedescription

import (
	"bytes"
	"context"
	"strings"

	"golang.org/x/net/html"

	apperrors "project-analyzer/internal/common/errors"
	apphttp "project-analyzer/internal/common/http"
)

// Fetcher retrieves fallback text for a project page. Every failure comes
// back as a *errors.StandardError with a FETCH_* or META_NOT_FOUND code.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// DescriptionCache stores descriptions already fetched for a URL.
type DescriptionCache interface {
	GetDescription(ctx context.Context, url string) (string, bool, error)
	SetDescription(ctx context.Context, url, description string) error
}

// MetaFetcher GETs a page and returns its <meta name="description"> content.
type MetaFetcher struct {
	client *apphttp.Client
}

func NewMetaFetcher(config *Config) *MetaFetcher {
	return &MetaFetcher{
		client: apphttp.NewClient(config.Timeout,
			apphttp.WithUserAgent(config.UserAgent),
			apphttp.WithMaxBodyBytes(config.MaxBodyBytes),
		),
	}
}

func (f *MetaFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := f.client.GetBody(ctx, url)
	if err != nil {
		return "", err
	}

	desc, ok := ExtractMetaDescription(body)
	if !ok {
		return "", apperrors.NewMetaNotFoundError(url)
	}
	return desc, nil
}

// ExtractMetaDescription returns the trimmed content of the first
// <meta name="description"> element. The name value must match exactly. A
// first match with empty content counts as not found.
func ExtractMetaDescription(body []byte) (string, bool) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", false
	}

	node := findMetaDescription(doc)
	if node == nil {
		return "", false
	}
	content := strings.TrimSpace(getAttr(node, "content"))
	if content == "" {
		return "", false
	}
	return content, true
}

func findMetaDescription(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "meta" && getAttr(n, "name") == "description" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findMetaDescription(c); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
