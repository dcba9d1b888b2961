// Package place extracts a candidate location phrase from a weather-style
// query and reduces inflected Russian place phrases to a canonical base form
// suitable for a geocoding lookup.
package place

import (
	"regexp"
	"strings"

	"assist-server/internal/nlp/normalizer"
)

// cityForms maps known inflected city phrases to their canonical names.
var cityForms = map[string]string{
	"москве":           "москва",
	"москов":           "москва",
	"санкт-петербурге": "санкт-петербург",
	"питере":           "санкт-петербург",
	"питер":            "санкт-петербург",
	"нью-йорке":        "нью-йорк",
	"нью йорке":        "нью-йорк",
	"нью йорк":         "нью-йорк",
	"токио":            "токио",
	"париже":           "париж",
	"риме":             "рим",
	"берлине":          "берлин",
	"лондоне":          "лондон",
	"мехико":           "мехико",
	"пекине":           "пекин",
	"стамбуле":         "стамбул",
	"анкаре":           "анкара",
	"мадриде":          "мадрид",
}

// countryForms maps known inflected country phrases to the nominative form
// used as the countryCapital key. Checked inside Tidy so that a query like
// "погода в Италии" resolves to "италия" instead of a broken stem.
var countryForms = map[string]string{
	"италии":         "италия",
	"японии":         "япония",
	"россии":         "россия",
	"украине":        "украина",
	"китае":          "китай",
	"германии":       "германия",
	"франции":        "франция",
	"испании":        "испания",
	"португалии":     "португалия",
	"великобритании": "великобритания",
	"англии":         "англия",
	"британии":       "британия",
	"америке":        "америка",
	"канаде":         "канада",
	"мексике":        "мексика",
	"турции":         "турция",
	"польше":         "польша",
	"кыргызстане":    "кыргызстан",
	"казахстане":     "казахстан",
	"узбекистане":    "узбекистан",
	"чехии":          "чехия",
	"швеции":         "швеция",
	"норвегии":       "норвегия",
	"финляндии":      "финляндия",
	"швейцарии":      "швейцария",
	"штатах":         "штаты",
}

// countryCapital maps country names and their common aliases to the capital
// (or, for америка, the customary answer) used for the weather lookup.
var countryCapital = map[string]string{
	"россия":            "москва",
	"украина":           "киев",
	"италия":            "рим",
	"япония":            "токио",
	"китай":             "пекин",
	"германия":          "берлин",
	"франция":           "париж",
	"испания":           "мадрид",
	"португалия":        "лиссабон",
	"великобритания":    "лондон",
	"англия":            "лондон",
	"британия":          "лондон",
	"uk":                "лондон",
	"united kingdom":    "лондон",
	"сша":               "вашингтон",
	"соединенные штаты": "вашингтон",
	"соединённые штаты": "вашингтон",
	"штаты":             "вашингтон",
	"америка":           "нью-йорк",
	"канада":            "оттава",
	"мексика":           "мехико",
	"турция":            "анкара",
	"польша":            "варшава",
	"кыргызстан":        "бишкек",
	"казахстан":         "астана",
	"узбекистан":        "ташкент",
	"чехия":             "прага",
	"швеция":            "стокгольм",
	"норвегия":          "осло",
	"финляндия":         "хельсинки",
	"швейцария":         "берн",
}

var (
	trailingPunctRe = regexp.MustCompile(`[.,!?;:()«»"'` + "`" + `]+$`)
	qualifierRe     = regexp.MustCompile(`(^|\s)(город|страна|в\s+городе|в\s+стране)($|\s)`)

	// suffixRe strips at most one case/inflection suffix; alternatives are
	// ordered longest first so the longest applicable suffix wins.
	suffixRe = regexp.MustCompile(`(ой|ей|ии|ий|ая|ые|ом|ым|ам|ям|е|и|у|ю)$`)

	weatherInRe    = regexp.MustCompile(`погод[аеы]?\s+(в|во)\s+(.+)`)
	forecastInRe   = regexp.MustCompile(`прогноз\s+(в|во)\s+(.+)`)
	inPlaceNowRe   = regexp.MustCompile(`(в|во)\s+([a-zа-яё\-\s]+)\s+(сейчас|сегодня)`)
	trailingInRe   = regexp.MustCompile(`(^|\s)(в|во)\s+([a-zа-яё0-9\-\s]+)$`)
	weatherStemsRe = regexp.MustCompile(`погод|температур|дожд|снег|прогноз`)
)

// fillerWords are dropped from a weather-flavored query when no explicit
// "in X" pattern matched; whatever remains is the place candidate.
var fillerWords = map[string]bool{
	"какая":   true,
	"какой":   true,
	"текущая": true,
	"сейчас":  true,
	"сегодня": true,
	"погода":  true,
	"прогноз": true,
	"в":       true,
	"во":      true,
}

// Tidy reduces a raw location phrase to its canonical base form. It returns
// false when nothing remains after cleanup.
func Tidy(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSpace(trailingPunctRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(qualifierRe.ReplaceAllString(s, " "))
	if canonical, ok := cityForms[s]; ok {
		return canonical, true
	}
	if canonical, ok := countryForms[s]; ok {
		return canonical, true
	}
	s = strings.TrimSpace(suffixRe.ReplaceAllString(s, ""))
	if s == "" {
		return "", false
	}
	return s, true
}

// Extract pulls a candidate place out of a weather-style query. Patterns are
// tried in order and the first match wins; every hit is passed through Tidy.
func Extract(query string) (string, bool) {
	q := normalizer.Normalize(query)

	if m := weatherInRe.FindStringSubmatch(q); m != nil {
		return Tidy(m[2])
	}
	if m := forecastInRe.FindStringSubmatch(q); m != nil {
		return Tidy(m[2])
	}
	if m := inPlaceNowRe.FindStringSubmatch(q); m != nil {
		return Tidy(m[2])
	}
	if m := trailingInRe.FindStringSubmatch(q); m != nil {
		return Tidy(m[3])
	}
	if weatherStemsRe.MatchString(q) {
		var kept []string
		for _, w := range strings.Fields(q) {
			w = strings.Trim(w, `.,!?;:()«»"'`)
			if w == "" || fillerWords[w] {
				continue
			}
			kept = append(kept, w)
		}
		if tail := strings.Join(kept, " "); tail != "" {
			return Tidy(tail)
		}
	}
	return "", false
}

// CityForm resolves a known inflected or canonical city form.
func CityForm(s string) (string, bool) {
	canonical, ok := cityForms[s]
	return canonical, ok
}

// CountryCapital resolves a country name to the city used for its weather.
func CountryCapital(s string) (string, bool) {
	capital, ok := countryCapital[s]
	return capital, ok
}
