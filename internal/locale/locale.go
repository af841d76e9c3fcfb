// Package locale holds the translated copy of the game.
package locale

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/rovshanmuradov/tryluck/internal/game"
)

// Language is a supported UI language.
type Language string

const (
	Chinese Language = "zh"
	English Language = "en"

	Default = Chinese
)

// ParseLanguage maps a config value to a Language.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Chinese:
		return Chinese, nil
	case English:
		return English, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Toggle returns the other language
func (l Language) Toggle() Language {
	if l == English {
		return Chinese
	}
	return English
}

func (l Language) String() string {
	return string(l)
}

func (l Language) normalize() Language {
	if l == English {
		return English
	}
	return Chinese
}

// T returns the translation of key, or key itself when it has none.
func T(lang Language, key Key) string {
	if s, ok := translations[lang.normalize()][key]; ok {
		return s
	}
	return string(key)
}

// WelcomeQuote picks a random welcome line.
func WelcomeQuote(lang Language, rng *rand.Rand) string {
	return pick(welcomeQuotes[lang.normalize()], rng)
}

// ResultQuote picks a random line for the result type with {x} replaced by
// pnlPercent formatted to two decimals.
func ResultQuote(lang Language, t game.ResultType, pnlPercent float64, rng *rand.Rand) string {
	var quotes map[Language][]string
	switch t {
	case game.WinBig:
		quotes = winBigQuotes
	case game.WinSmall:
		quotes = winSmallQuotes
	default:
		quotes = lossQuotes
	}
	tpl := pick(quotes[lang.normalize()], rng)
	return strings.Replace(tpl, "{x}", fmt.Sprintf("%.2f", pnlPercent), 1)
}

// ResultTitle returns the headline shown for a result type.
func ResultTitle(lang Language, t game.ResultType) string {
	switch t {
	case game.WinBig:
		return T(lang, WinBigTitle)
	case game.WinSmall:
		return T(lang, WinSmallTitle)
	default:
		return T(lang, LossTitle)
	}
}

func pick(items []string, rng *rand.Rand) string {
	if len(items) == 0 {
		return ""
	}
	if rng == nil {
		return items[rand.Intn(len(items))]
	}
	return items[rng.Intn(len(items))]
}
