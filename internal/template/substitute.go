package template

import (
	"regexp"
	"strings"
)

var (
	placeholderRe = regexp.MustCompile(`\{([^{}\s]+)\}`)
	tokenRe       = regexp.MustCompile(`\{([^{}]+)\}`)
)

// Substitute replaces every occurrence of {key} in text with vars[key].
// Tokens whose key is absent from vars are left verbatim. Matching is
// case-sensitive and there is no escape syntax. Tokens are resolved in one
// pass over the original text, so substituted values are never rescanned.
func Substitute(text string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(text, "{") {
		return text
	}
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if v, ok := vars[tok[1:len(tok)-1]]; ok {
			return v
		}
		return tok
	})
}

// Placeholders returns the distinct placeholder keys in text, in order of
// first appearance.
func Placeholders(text string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}
