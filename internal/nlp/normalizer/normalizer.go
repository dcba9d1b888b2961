// Package normalizer canonicalizes raw user text before classification:
// lowercase, trim, whole-word slang substitution, whitespace collapse.
package normalizer

import (
	"regexp"
	"strings"
)

// boundary is the character class that delimits a whole word. A slang token is
// only replaced when it is framed by these characters or the string edges, so
// substrings inside longer words are never touched.
const boundary = `[\s.,!?:;"'«»()\-]`

type slangRule struct {
	re          *regexp.Regexp
	replacement string
}

// slangDict maps slang tokens to canonical forms. Order is fixed so that
// normalization is deterministic and idempotent.
var slangDict = []struct {
	slang  string
	normal string
}{
	{"че", "что"},
	{"чо", "что"},
	{"шо", "что"},
	{"изи", "легко"},
	{"топчик", "очень хорошо"},
	{"видос", "видео"},
	{"го", "давай"},
	{"лютый", "очень сильный"},
	{"как жизнь", "как дела"},
}

var slangRules []slangRule

var whitespaceRe = regexp.MustCompile(`\s+`)

func init() {
	slangRules = make([]slangRule, 0, len(slangDict))
	for _, entry := range slangDict {
		re := regexp.MustCompile(`(?i)(^|` + boundary + `)` + regexp.QuoteMeta(entry.slang) + `(` + boundary + `|$)`)
		slangRules = append(slangRules, slangRule{
			re:          re,
			replacement: `${1}` + entry.normal + `${2}`,
		})
	}
}

// Normalize lowercases, trims, rewrites slang tokens to their canonical forms
// and collapses whitespace runs. Always returns a string, possibly empty.
// The substitution loop runs to a fixpoint: a replacement consumes the boundary
// character it matched, so an adjacent slang token can survive a single pass.
func Normalize(text string) string {
	norm := strings.TrimSpace(strings.ToLower(text))
	for {
		prev := norm
		for _, rule := range slangRules {
			norm = rule.re.ReplaceAllString(norm, rule.replacement)
		}
		if norm == prev {
			break
		}
	}
	return whitespaceRe.ReplaceAllString(norm, " ")
}

// HasToken reports whether token occurs in s as a whole word.
func HasToken(s, token string) bool {
	re := regexp.MustCompile(`(?i)(^|` + boundary + `)` + regexp.QuoteMeta(token) + `(` + boundary + `|$)`)
	return re.MatchString(s)
}

// HasAnyToken reports whether any of the tokens occurs in s as a whole word.
func HasAnyToken(s string, tokens []string) bool {
	for _, t := range tokens {
		if HasToken(s, t) {
			return true
		}
	}
	return false
}

// HasPhrase reports whether s contains the phrase as a substring.
func HasPhrase(s, phrase string) bool {
	return strings.Contains(s, strings.ToLower(phrase))
}

// Words splits s on whitespace, dropping empty fields.
func Words(s string) []string {
	return strings.Fields(s)
}
