// Package loganalyzer разбирает текстовые логи: считает уровни,
// определяет временной диапазон и группирует повторяющиеся ошибки.
package loganalyzer

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var ErrEmptyInput = errors.New("пустой ввод: нет лога для анализа")

// topErrorLimit ограничивает число групп ошибок в отчёте.
const topErrorLimit = 5

var (
	levelPatterns = map[string]*regexp.Regexp{
		"ERROR": regexp.MustCompile(`(?i)\b(error|err)\b`),
		"WARN":  regexp.MustCompile(`(?i)\b(warn|warning)\b`),
		"INFO":  regexp.MustCompile(`(?i)\binfo\b`),
		"DEBUG": regexp.MustCompile(`(?i)\bdebug\b`),
	}

	timestampRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}`)

	// Паттерны нормализации для группировки похожих ошибок.
	uuidRe   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	hexRe    = regexp.MustCompile(`\b0x[0-9a-fA-F]+\b|\b[0-9a-f]{8,}\b`)
	numberRe = regexp.MustCompile(`\b\d+\b`)
)

// ErrorGroup — повторяющаяся ошибка после нормализации.
type ErrorGroup struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Report — итог анализа лога.
type Report struct {
	TotalLines     int            `json:"totalLines"`
	Levels         map[string]int `json:"levels"`
	FirstTimestamp string         `json:"firstTimestamp,omitempty"`
	LastTimestamp  string         `json:"lastTimestamp,omitempty"`
	TopErrors      []ErrorGroup   `json:"topErrors"`
}

// Analyze разбирает буфер лога построчно.
func Analyze(logText string) (*Report, error) {
	if strings.TrimSpace(logText) == "" {
		return nil, ErrEmptyInput
	}

	report := &Report{
		Levels: map[string]int{"ERROR": 0, "WARN": 0, "INFO": 0, "DEBUG": 0},
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, line := range strings.Split(logText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		report.TotalLines++

		if ts := timestampRe.FindString(trimmed); ts != "" {
			if report.FirstTimestamp == "" {
				report.FirstTimestamp = ts
			}
			report.LastTimestamp = ts
		}

		level := detectLevel(trimmed)
		if level != "" {
			report.Levels[level]++
		}
		if level == "ERROR" {
			key := normalizeMessage(trimmed)
			if _, ok := counts[key]; !ok {
				firstSeen[key] = report.TotalLines
			}
			counts[key]++
		}
	}

	report.TopErrors = topErrors(counts, firstSeen)
	return report, nil
}

// detectLevel возвращает первый совпавший уровень в порядке серьёзности.
func detectLevel(line string) string {
	for _, level := range []string{"ERROR", "WARN", "INFO", "DEBUG"} {
		if levelPatterns[level].MatchString(line) {
			return level
		}
	}
	return ""
}

// normalizeMessage заменяет изменчивые части строки (идентификаторы, числа,
// временные метки), чтобы одинаковые по сути ошибки попадали в одну группу.
func normalizeMessage(line string) string {
	line = timestampRe.ReplaceAllString(line, "<TS>")
	line = uuidRe.ReplaceAllString(line, "<UUID>")
	line = hexRe.ReplaceAllString(line, "<HEX>")
	line = numberRe.ReplaceAllString(line, "<N>")
	return strings.TrimSpace(line)
}

func topErrors(counts map[string]int, firstSeen map[string]int) []ErrorGroup {
	groups := make([]ErrorGroup, 0, len(counts))
	for msg, n := range counts {
		groups = append(groups, ErrorGroup{Message: msg, Count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return firstSeen[groups[i].Message] < firstSeen[groups[j].Message]
	})
	if len(groups) > topErrorLimit {
		groups = groups[:topErrorLimit]
	}
	return groups
}

// FormatReport готовит краткую текстовую сводку отчёта. Используется в CLI
// и как контекст для запроса инсайтов у LLM.
func FormatReport(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Строк: %d\n", r.TotalLines)
	fmt.Fprintf(&b, "Уровни: ERROR=%d WARN=%d INFO=%d DEBUG=%d\n",
		r.Levels["ERROR"], r.Levels["WARN"], r.Levels["INFO"], r.Levels["DEBUG"])
	if r.FirstTimestamp != "" {
		fmt.Fprintf(&b, "Диапазон: %s — %s\n", r.FirstTimestamp, r.LastTimestamp)
	}
	if len(r.TopErrors) > 0 {
		b.WriteString("Частые ошибки:\n")
		for _, g := range r.TopErrors {
			fmt.Fprintf(&b, "  %dx %s\n", g.Count, g.Message)
		}
	}
	return b.String()
}
