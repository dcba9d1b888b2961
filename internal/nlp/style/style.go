// Package style infers the response register from lexical cues and reconciles
// it with an explicit caller-supplied lock.
package style

import (
	"regexp"
	"strings"
)

// Style is the response register.
type Style string

const (
	Formal   Style = "formal"
	Friendly Style = "friendly"
)

var (
	slangRe   = regexp.MustCompile(`че|чо|изи|топчик|го|нормас|лютый|чел|бро|лол|ахах`)
	politeRe  = regexp.MustCompile(`пожалуйста|не могли бы|будьте добры|здравствуйте`)
	formalYou = regexp.MustCompile(`(^|\s)вы(\s|$)`)
)

// DetectAuto infers the register from raw text. Politeness without slang wins
// formal; slang or a short utterance wins friendly; formal is the default.
func DetectAuto(text string) Style {
	t := strings.ToLower(text)
	short := len(strings.Fields(t)) <= 6
	slang := slangRe.MatchString(t)
	polite := politeRe.MatchString(t) || formalYou.MatchString(t)

	if polite && !slang {
		return Formal
	}
	if slang || short {
		return Friendly
	}
	return Formal
}

// Resolve applies the caller lock. The lock wins only when it is exactly one
// of the two valid registers; any other value (including "auto" and "") keeps
// the auto-detected style.
func Resolve(auto Style, lock string) Style {
	if lock == string(Friendly) || lock == string(Formal) {
		return Style(lock)
	}
	return auto
}
