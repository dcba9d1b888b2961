// internal/nlp/style/style_test.go
package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAuto(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Style
	}{
		{"polite marker wins formal", "Здравствуйте, не могли бы помочь с документом", Formal},
		{"standalone вы wins formal", "вы можете подсказать адрес ближайшей станции метро", Formal},
		{"slang wins friendly", "чо делаем дальше", Friendly},
		{"short query wins friendly", "расскажи анекдот", Friendly},
		{"polite plus slang stays friendly", "будьте добры, го разбираться", Friendly},
		{"long neutral defaults formal", "мне нужна подробная справка об истории железных дорог", Formal},
		{"вы inside a word is not polite", "вызов принят и записан дежурным на утро", Formal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectAuto(tt.text))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		auto     Style
		lock     string
		expected Style
	}{
		{"lock formal overrides", Friendly, "formal", Formal},
		{"lock friendly overrides", Formal, "friendly", Friendly},
		{"lock auto keeps detected", Friendly, "auto", Friendly},
		{"empty lock keeps detected", Formal, "", Formal},
		{"unknown lock keeps detected", Friendly, "shouty", Friendly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.auto, tt.lock))
		})
	}
}
