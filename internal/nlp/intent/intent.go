// Package intent assigns exactly one intent tag to a normalized query via an
// ordered rule chain. Rule order is an invariant: later rules are fallbacks
// for earlier ones, and the first match wins.
package intent

import (
	"regexp"

	"assist-server/internal/nlp/normalizer"
)

// Intent is the classified purpose of a user query.
type Intent string

const (
	Empty       Intent = "EMPTY"
	Greeting    Intent = "GREETING"
	HowAreYou   Intent = "HOW_ARE_YOU"
	Thanks      Intent = "THANKS"
	Bye         Intent = "BYE"
	Time        Intent = "TIME"
	Weather     Intent = "WEATHER"
	WebSearch   Intent = "WEB_SEARCH"
	SmallTalk   Intent = "SMALL_TALK"
	GeneralChat Intent = "GENERAL_CHAT"

	// Error is never produced by Classify; it tags the generic error envelope.
	Error Intent = "ERROR"
)

var (
	greetingTokens  = []string{"привет", "здравствуй", "здравствуйте", "йо", "хай", "прив", "дарова"}
	howAreYouTokens = []string{"как дела", "что нового", "как ты", "как жизнь"}
	thanksTokens    = []string{"спасибо", "благодарю", "мерси"}
	byeTokens       = []string{"пока", "до встречи", "увидимся", "бай"}
	searchTokens    = []string{"новости", "тренды", "ситуация", "объясни", "google", "браузер"}
	lookupTokens    = []string{"найди", "поищи", "в гугле", "в интернете"}

	weatherRe       = regexp.MustCompile(`погод|температур|дожд|снег|прогноз`)
	interrogativeRe = regexp.MustCompile(`кто|что|где|когда|почему|зачем|как|сколько`)
	questionMarkRe  = regexp.MustCompile(`[?]`)
)

type rule struct {
	tag   Intent
	match func(q string, words []string) bool
}

// rules is evaluated top to bottom; do not reorder.
var rules = []rule{
	{Greeting, func(q string, _ []string) bool {
		return normalizer.HasAnyToken(q, greetingTokens)
	}},
	{HowAreYou, func(q string, _ []string) bool {
		return normalizer.HasAnyToken(q, howAreYouTokens)
	}},
	{Thanks, func(q string, _ []string) bool {
		return normalizer.HasAnyToken(q, thanksTokens)
	}},
	{Bye, func(q string, _ []string) bool {
		return normalizer.HasAnyToken(q, byeTokens)
	}},
	{Time, func(q string, _ []string) bool {
		return normalizer.HasPhrase(q, "сколько времени") ||
			normalizer.HasPhrase(q, "сколько время") ||
			normalizer.HasToken(q, "который час") ||
			normalizer.HasToken(q, "время")
	}},
	{Weather, func(q string, _ []string) bool {
		return weatherRe.MatchString(q)
	}},
	{WebSearch, func(q string, _ []string) bool {
		return normalizer.HasAnyToken(q, searchTokens) ||
			normalizer.HasPhrase(q, "расскажи про") ||
			normalizer.HasPhrase(q, "расскажи об") ||
			normalizer.HasAnyToken(q, lookupTokens)
	}},
	{WebSearch, func(q string, words []string) bool {
		hasQ := questionMarkRe.MatchString(q) || interrogativeRe.MatchString(q)
		return hasQ && len(words) >= 4
	}},
	{SmallTalk, func(_ string, words []string) bool {
		return len(words) <= 3
	}},
}

// Classify maps normalized text to exactly one intent tag. It is total: every
// input resolves, with GeneralChat as the final catch-all.
func Classify(normalized string) Intent {
	if normalized == "" {
		return Empty
	}
	words := normalizer.Words(normalized)
	for _, r := range rules {
		if r.match(normalized, words) {
			return r.tag
		}
	}
	return GeneralChat
}
