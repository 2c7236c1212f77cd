package service

import (
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const speechWordsPerMinute = 150

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+`)
	technicalTerms   = regexp.MustCompile(`(?i)\b(api|database|algorithm|framework|architecture|implementation|optimization|scalability|security|performance)\b`)
)

// question keyword groups, checked in order; first match wins
var questionTypeKeywords = []struct {
	kind     string
	keywords []string
}{
	{"behavioral", []string{"tell me about", "describe", "explain", "walk me through"}},
	{"technical", []string{"how would you", "what would you", "design", "implement", "solve"}},
	{"motivational", []string{"why", "motivation", "interest", "passion"}},
	{"self-assessment", []string{"strengths", "weaknesses", "skills", "abilities"}},
}

var (
	exampleIndicators   = []string{"example", "for instance", "specifically", "when"}
	technicalIndicators = []string{"api", "database", "system", "process", "method"}
)

// textSanitizer strips markup from caller-supplied text before it is embedded in prompts.
type textSanitizer struct {
	policy *bluemonday.Policy
}

func newTextSanitizer() textSanitizer {
	return textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s textSanitizer) Clean(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}

func (s textSanitizer) CleanAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		cleaned = append(cleaned, s.Clean(value))
	}
	return cleaned
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// estimateSpeechSeconds assumes 150 words per minute, floored, never below one second.
func estimateSpeechSeconds(text string) int {
	seconds := int(float64(wordCount(text)) / speechWordsPerMinute * 60)
	if seconds < 1 {
		return 1
	}
	return seconds
}

func classifyQuestion(question string) string {
	lower := strings.ToLower(question)
	for _, group := range questionTypeKeywords {
		if containsAny(lower, group.keywords) {
			return group.kind
		}
	}
	return "general"
}

// assessComplexity grades an answer by length, sentence length and technical vocabulary.
func assessComplexity(answer string) string {
	words := wordCount(answer)
	sentences := len(sentenceBoundary.Split(answer, -1))
	avgSentenceLength := float64(words) / math.Max(float64(sentences), 1)
	terms := len(technicalTerms.FindAllStringIndex(answer, -1))

	switch {
	case words > 100 && avgSentenceLength > 15 && terms > 2:
		return "high"
	case words > 50 && avgSentenceLength > 10:
		return "medium"
	default:
		return "low"
	}
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func firstWords(text string, n int) []string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return words
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func clampScore(value float64) float64 {
	return math.Min(10, math.Max(1, value))
}

// clampRating bounds an interviewer rating to [0,10].
func clampRating(value float64) float64 {
	return math.Min(10, math.Max(0, value))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
