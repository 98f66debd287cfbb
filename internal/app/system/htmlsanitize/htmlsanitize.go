// Package htmlsanitize cleans rich-text HTML submitted as blog content.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
	textPolicy = bluemonday.StrictPolicy()
)

// contentPolicy is the UGC policy plus what the blog editor emits: tables,
// image sizing and text alignment.
func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		p.AllowAttrs("class").OnElements("table", "figure", "pre", "code")
		p.AllowAttrs("width", "height").Matching(bluemonday.Integer).OnElements("img")
		p.AllowStyles("text-align").MatchingEnum("left", "right", "center", "justify").OnElements("p", "h1", "h2", "h3", "h4", "td", "th")
		p.RequireNoFollowOnLinks(true)
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers, javascript: URLs and any element
// the editor cannot produce. Safe markup is returned unchanged.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return contentPolicy().Sanitize(html)
}

// StripTags removes all markup, for single-line fields like titles.
func StripTags(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// IsBlank reports whether html has no visible text once tags are removed.
func IsBlank(html string) bool {
	return StripTags(html) == ""
}
