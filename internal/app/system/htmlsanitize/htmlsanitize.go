// Package htmlsanitize strips dangerous markup from user-authored rich
// text before it is stored. Card descriptions and comments arrive from
// a rich-text editor, so they may legitimately contain formatting but
// never scripts or event handlers.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Editors emit these beyond what the UGC policy covers.
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements(
		"table", "thead", "tbody", "tr", "th", "td",
		"p", "span", "div", "code", "pre",
	)

	return p
}

// Sanitize returns s with unsafe HTML removed. Safe formatting tags
// pass through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
