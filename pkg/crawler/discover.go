package crawler

import (
	"net/url"
	"strings"

	"mailsweep/pkg/parse"
)

// DiscoverLinks turns a page's raw href values into the admissible set of
// normalized absolute URLs to enqueue. Each raw link is resolved against
// baseURL; candidates that fail to resolve or use a non-http(s) scheme
// (mailto:, javascript:, tel:) are discarded silently — inadmissible, not
// errors. The domain policy keeps a resolved URL iff crossDomain is true
// or its host equals baseDomain exactly; subdomains are different hosts
// (www.example.com is not example.com).
//
// Output preserves first-seen order from rawLinks, deduplicated within
// the call by normalized URL. Purely functional: no side effects, and an
// unresolvable individual link never aborts the whole call.
func DiscoverLinks(rawLinks []string, baseDomain string, baseURL *url.URL, crossDomain bool) []string {
	if len(rawLinks) == 0 || baseURL == nil {
		return nil
	}

	var discovered []string
	seen := make(map[string]struct{}, len(rawLinks))
	for _, raw := range rawLinks {
		if raw == "" {
			continue
		}
		resolved, err := baseURL.Parse(raw)
		if err != nil {
			continue
		}
		if !parse.IsCrawlableScheme(resolved) {
			continue
		}
		host := strings.ToLower(resolved.Hostname())
		if host == "" {
			continue
		}
		if !crossDomain && host != baseDomain {
			continue
		}
		normalized := parse.NormalizeURL(resolved)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		discovered = append(discovered, normalized)
	}
	return discovered
}
