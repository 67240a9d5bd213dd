package processor

import (
	"encoding/json"
	"regexp"
)

// RewriteRule replaces every occurrence of a web route's host in proxied
// content with the proxy's own origin. Match is nil when the route had no
// host, or the host did not compile as a pattern.
type RewriteRule struct {
	Host    string
	Match   *regexp.Regexp
	Replace string
}

// NewRewriteRule builds the rule for host. The host is used as a regular
// expression unless literal is set, in which case it is matched verbatim.
func NewRewriteRule(host, replace string, literal bool) RewriteRule {
	rule := RewriteRule{Host: host, Replace: replace}
	if host == "" {
		return rule
	}

	pattern := host
	if literal {
		pattern = regexp.QuoteMeta(host)
	}

	match, err := regexp.Compile(pattern)
	if err != nil {
		return rule
	}

	rule.Match = match
	return rule
}

// Valid reports whether the rule has a pattern to apply.
func (r RewriteRule) Valid() bool {
	return r.Match != nil
}

// Apply rewrites all matches in s. Invalid rules return s unchanged.
func (r RewriteRule) Apply(s string) string {
	if !r.Valid() {
		return s
	}
	return r.Match.ReplaceAllLiteralString(s, r.Replace)
}

// ApplyAll runs every valid rule over body, in order.
func ApplyAll(rules []RewriteRule, body []byte) []byte {
	for _, r := range rules {
		if !r.Valid() {
			continue
		}
		body = r.Match.ReplaceAllLiteral(body, []byte(r.Replace))
	}
	return body
}

type rewriteRuleJSON struct {
	Host    string  `json:"host,omitempty"`
	Match   *string `json:"match"`
	Replace string  `json:"replace"`
}

// MarshalJSON encodes the pattern as a string, or null for an invalid rule.
func (r RewriteRule) MarshalJSON() ([]byte, error) {
	out := rewriteRuleJSON{Host: r.Host, Replace: r.Replace}
	if r.Match != nil {
		pattern := r.Match.String()
		out.Match = &pattern
	}
	return json.Marshal(out)
}
