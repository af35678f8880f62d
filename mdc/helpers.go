package mdc

import (
	"strconv"
	"strings"

	"github.com/iwtcode/haasAdapter/models"
)

// reasonFor различает пустой ответ и ответ неожиданной формы.
func reasonFor(tokens []string) models.Reason {
	if len(tokens) == 0 {
		return models.ReasonNoResponse
	}
	return models.ReasonMalformed
}

// hasWords проверяет, что tokens начинаются с words.
func hasWords(tokens, words []string) bool {
	if len(words) == 0 || len(tokens) < len(words) {
		return false
	}
	for i, w := range words {
		if tokens[i] != w {
			return false
		}
	}
	return true
}

// matchPhrase проверяет, что с позиции from в ответе стоит фраза.
// Фраза из нескольких слов может прийти одним токеном ("TOOL CHANGES")
// или, после разбиения по пробелам, несколькими ("TOOL", "CHANGES").
// Возвращает индекс токена сразу после фразы.
func matchPhrase(tokens []string, from int, phrase string) (int, bool) {
	if from < 0 || from >= len(tokens) {
		return 0, false
	}
	if tokens[from] == phrase {
		return from + 1, true
	}
	words := strings.Fields(phrase)
	if hasWords(tokens[from:], words) {
		return from + len(words), true
	}
	return 0, false
}

// matchKeyword ищет первую фразу из keywords, стоящую в позиции from.
func matchKeyword(tokens []string, from int, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if _, ok := matchPhrase(tokens, from, kw); ok {
			return kw, true
		}
	}
	return "", false
}

// labeledValue возвращает токен, идущий сразу за меткой в начале ответа.
func labeledValue(tokens []string, label string) (string, bool) {
	if len(tokens) <= 1 {
		return "", false
	}
	next, ok := matchPhrase(tokens, 0, label)
	if !ok || next >= len(tokens) {
		return "", false
	}
	return tokens[next], true
}

// parseCount разбирает неотрицательное целое, состоящее только из цифр.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func upperAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToUpper(t)
	}
	return out
}
