package ai

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?```$")

// newPolicy allows what the editor can represent: user-generated content
// markup plus the classes the editor itself writes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("mark", "s", "span", "div", "figure", "figcaption")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(font-serif|font-mono|callout|gallery)$`)).OnElements("span", "div")
	p.AllowStyles("text-align").MatchingEnum("center", "right", "justify").OnElements("p", "h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// cleanOutput strips the markdown code fence models like to add and
// sanitizes what is left
func cleanOutput(p *bluemonday.Policy, raw string) string {
	out := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(out); m != nil {
		out = strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(p.Sanitize(out))
}
