package markup

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// Sanitize strips everything except inline phrasing markup from raw. It is
// used for application supplied label markup such as "I accept the <a>terms</a>".
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(inlineSanitizer().Sanitize(trimmed))
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "b", "i", "span", "abbr", "code", "small")
		policy.AllowAttrs("href", "target", "rel").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(false)
		policy.AllowAttrs("title").OnElements("abbr", "span")
		policy.AllowAttrs("class").OnElements("span", "a", "small")

		inlinePolicy = policy
	})
	return inlinePolicy
}
