package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	maxPageBytes = 8 << 20
	userAgent    = "page-push/1.0 (+https://github.com/bnema/page-push)"
)

// Web fetches the page and extracts its readable text. A handle that already
// carries text is returned as is.
type Web struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

var _ ports.PageExtractor = Web{}

func (w Web) Extract(ctx context.Context, page domain.PageHandle) (string, error) {
	if err := CheckScriptable(page.URL); err != nil {
		return "", err
	}
	if strings.TrimSpace(page.Text) != "" {
		return page.Text, nil
	}

	pageURL, err := url.Parse(page.URL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return "", fmt.Errorf("unsupported page url scheme %q", pageURL.Scheme)
	}

	body, err := w.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	if text := readableText(body, pageURL); text != "" {
		return text, nil
	}

	w.logger().Debug("readability found no article, using body text", "url", page.URL)

	return bodyText(body)
}

func (w Web) fetch(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := w.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	return body, nil
}

func (w Web) httpClient() *http.Client {
	if w.HTTPClient != nil {
		return w.HTTPClient
	}
	return http.DefaultClient
}

func (w Web) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

func readableText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return ""
	}

	return collapseWhitespace(article.TextContent)
}

func bodyText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse page html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	return collapseWhitespace(doc.Find("body").Text()), nil
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
