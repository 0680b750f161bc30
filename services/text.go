package services

import (
	"strings"

	"debatebot/models"
)

const (
	defaultSummaryWords = 25
	summaryFallbackLen  = 150
)

// Summarize returns the first sentence of content. Sentences longer than
// maxWords are cut to maxWords words and end with "...". When there is no
// first sentence the first 150 characters are used instead.
func Summarize(content string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = defaultSummaryWords
	}

	first, _, _ := strings.Cut(content, ".")
	first = strings.TrimSpace(first)
	if first == "" {
		return truncateRunes(strings.TrimSpace(content), summaryFallbackLen) + "..."
	}

	words := strings.Fields(first)
	if len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + "..."
	}
	return first + "."
}

// SplitPoints breaks a counter-argument into its blank-line separated
// paragraphs, numbered from 1 in order of appearance.
func SplitPoints(text string) []models.Point {
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	var points []models.Point
	for _, para := range strings.Split(trimmed, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		points = append(points, models.Point{ID: len(points) + 1, Text: para})
	}
	if len(points) == 0 {
		points = []models.Point{{ID: 1, Text: trimmed}}
	}
	return points
}

// CountSentences counts non-empty sentences terminated by '.', '!' or '?'
func CountSentences(text string) int {
	n := 0
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
