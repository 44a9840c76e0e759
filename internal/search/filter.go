package search

import (
	"net/url"
	"strings"
)

// Social networks and directories never carry a business's own contact
// page, so their results are dropped before extraction.
var socialDomains = []string{
	"facebook.com", "instagram.com", "linkedin.com", "twitter.com", "x.com",
	"youtube.com", "yelp.com", "angieslist.com", "houzz.com", "pinterest.com", "tiktok.com",
}

// DomainOf returns the lowercased host of raw, or "" if it has none.
func DomainOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// IsBusinessSite reports whether a candidate URL looks like a business's
// own site: a parseable host, not a social/directory domain, and a
// .com/.net/.org suffix.
func IsBusinessSite(raw string) bool {
	d := DomainOf(raw)
	if d == "" {
		return false
	}
	for _, s := range socialDomains {
		if strings.Contains(d, s) {
			return false
		}
	}
	return strings.HasSuffix(d, ".com") || strings.HasSuffix(d, ".net") || strings.HasSuffix(d, ".org")
}

func filterBusinessSites(urls []string, count int) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || !IsBusinessSite(u) {
			continue
		}
		out = append(out, u)
		if count > 0 && len(out) >= count {
			break
		}
	}
	return out
}
