package analysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-doctor/internal/types"
)

// Verbs considered "strong" openers for resume bullets. Lowercase; matched
// against the first word of each bullet line with common suffixes allowed.
var strongVerbs = map[string]bool{
	"led": true, "built": true, "drove": true, "managed": true,
	"created": true, "designed": true, "developed": true, "implemented": true,
	"launched": true, "delivered": true, "improved": true, "reduced": true,
	"increased": true, "owned": true, "spearheaded": true, "architected": true,
	"automated": true, "optimized": true, "scaled": true, "shipped": true,
	"migrated": true, "mentored": true, "negotiated": true, "established": true,
	"streamlined": true, "achieved": true, "accelerated": true, "directed": true,
}

var (
	metricRe = regexp.MustCompile(`\d+(?:\.\d+)?\s*%|\$\s*\d[\d,]*(?:\.\d+)?[kKmMbB]?|\b\d[\d,]*\+?\s*(?:users|customers|clients|requests|records|engineers|people|hours|days|projects|teams)\b`)
	emailRe  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe  = regexp.MustCompile(`(?:\+?\d{1,2}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	bulletRe = regexp.MustCompile(`^[\s]*[•\-*‣▪]`)
	wordRe   = regexp.MustCompile(`[A-Za-z']+`)
)

// ComputeTextStats derives deterministic measurements from resume text,
// independent of any model call.
func ComputeTextStats(text string) types.TextStats {
	words := wordRe.FindAllString(text, -1)

	return types.TextStats{
		Readability:     fleschReadingEase(text, words),
		StrongVerbRatio: strongVerbRatio(text),
		MetricCount:     len(metricRe.FindAllString(text, -1)),
		WordCount:       len(words),
		HasContactInfo:  emailRe.MatchString(text) && phoneRe.MatchString(text),
	}
}

// strongVerbRatio is the fraction of bullet lines whose first word is a
// strong action verb. Lines without a bullet marker are treated as bullets
// too when they start with a verb-like word, since many resumes drop the
// markers in extracted text. Returns 0 when no bullet lines are found.
func strongVerbRatio(text string) float64 {
	var bullets, strong int
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
		if trimmed == "" {
			continue
		}
		isBullet := bulletRe.MatchString(line)
		first := firstWord(trimmed)
		if first == "" {
			continue
		}
		if !isBullet && !strongVerbs[first] {
			continue
		}
		bullets++
		if strongVerbs[first] {
			strong++
		}
	}
	if bullets == 0 {
		return 0
	}
	return float64(strong) / float64(bullets)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	word := strings.ToLower(fields[0])
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// fleschReadingEase computes the standard Flesch formula:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/word).
// Sentence boundaries are approximated by terminal punctuation and line
// breaks, which suits resume text better than prose rules.
func fleschReadingEase(text string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}

	sentences := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 - 1.015*(float64(len(words))/float64(sentences)) - 84.6*(float64(syllables)/float64(len(words)))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// countSyllables approximates syllable count by vowel groups, with the
// usual silent-e adjustment. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
