// Package page provides the page content extractors.
package page

import (
	"net/url"
	"strings"

	"github.com/bnema/page-push/internal/domain"
)

const msgProtectedPage = "This page is protected and cannot be scripted."

var (
	protectedSchemes = []string{"chrome", "chrome-extension"}
	protectedHosts   = []string{"perplexity.ai"}
)

// CheckScriptable refuses browser-internal pages and hosts that forbid
// content scripts.
func CheckScriptable(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil
	}

	scheme := strings.ToLower(parsed.Scheme)
	for _, protected := range protectedSchemes {
		if scheme == protected {
			return domain.NewError(domain.KindExtractionDenied, msgProtectedPage, nil)
		}
	}

	host := strings.ToLower(parsed.Hostname())
	for _, protected := range protectedHosts {
		if host == protected || strings.HasSuffix(host, "."+protected) {
			return domain.NewError(domain.KindExtractionDenied, msgProtectedPage, nil)
		}
	}

	return nil
}
