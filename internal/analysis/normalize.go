// Package analysis turns untrusted model output and raw resume text into
// fixed-shape scored reports.
package analysis

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-doctor/internal/types"
)

// Default values substituted for fields the model omitted or corrupted.
const (
	defaultScore    = 50
	defaultFeedback = "Analysis complete."
	defaultLevel    = "mid"
	defaultIndustry = "other"

	sentinelFeedback   = "Analysis failed to parse. Please try again."
	unreadableFeedback = "Unable to read resume content. Please ensure the PDF is not image-based or encrypted."
)

// Normalize recovers a well-formed Report from raw model output. It is total:
// it never returns an error, falling back to SentinelReport when the text is
// unrecoverable. Every field of the result is populated, substituting
// documented defaults for anything missing or of the wrong type.
func Normalize(raw string) types.Report {
	cleaned := CleanResponse(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return SentinelReport()
	}

	return types.Report{
		OverallScore:    intField(obj, "overall_score", defaultScore),
		ImpactScore:     intField(obj, "impact_score", defaultScore),
		BrevityScore:    intField(obj, "brevity_score", defaultScore),
		StyleScore:      intField(obj, "style_score", defaultScore),
		SummaryFeedback: stringField(obj, "summary_feedback", defaultFeedback),
		ExperienceLevel: stringField(obj, "experience_level", defaultLevel),
		Industry:        stringField(obj, "industry", defaultIndustry),
		Sections:        sectionsField(obj, "sections"),
		MissingKeywords: stringSliceField(obj, "missing_keywords"),
		ParsedData:      parsedDataField(obj, "parsed_data"),
		Recommendations: recommendationsField(obj, "recommendations"),
	}
}

// CleanResponse strips the wrappers the model is known to add despite
// instructions: markdown code fences, explanatory prose outside the JSON
// object, and stray control characters.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	// Keep only the widest {...} span; the model prepends and appends prose.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(stripControl(text))
}

// stripControl removes code points below 0x20 and in 0x7F-0x9F, except the
// whitespace characters JSON permits between tokens.
func stripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || (r >= 0x7F && r <= 0x9F):
			// drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SentinelReport is returned when normalization cannot recover any data:
// all scores zero, an explanatory message, unknown classifiers.
func SentinelReport() types.Report {
	return types.Report{
		SummaryFeedback: sentinelFeedback,
		ExperienceLevel: "unknown",
		Industry:        "unknown",
		Sections:        []types.Section{},
		MissingKeywords: []string{},
		ParsedData:      emptyParsedResume(),
		Recommendations: emptyRecommendations(),
	}
}

// UnreadableReport is returned without calling the model when the uploaded
// file yields no usable text.
func UnreadableReport() types.Report {
	r := SentinelReport()
	r.SummaryFeedback = unreadableFeedback
	return r
}

func emptyParsedResume() types.ParsedResume {
	return types.ParsedResume{
		Skills:     []string{},
		Experience: []types.ExperienceEntry{},
		Education:  []types.EducationEntry{},
	}
}

func emptyRecommendations() types.Recommendations {
	return types.Recommendations{
		HighPriority:   []string{},
		MediumPriority: []string{},
		LowPriority:    []string{},
	}
}

// intField reads an integer-valued field. JSON numbers decode as float64;
// anything else falls back to the default.
func intField(obj map[string]any, key string, def int) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	default:
		return def
	}
}

func stringField(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok && v != "" {
		return v
	}
	return def
}

func stringSliceField(obj map[string]any, key string) []string {
	out := []string{}
	items, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func sectionsField(obj map[string]any, key string) []types.Section {
	out := []types.Section{}
	items, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, types.Section{
			SectionName:     stringField(m, "section_name", "Unknown"),
			Score:           intField(m, "score", defaultScore),
			Issues:          stringSliceField(m, "issues"),
			ActionableFixes: stringSliceField(m, "actionable_fixes"),
		})
	}
	return out
}

func parsedDataField(obj map[string]any, key string) types.ParsedResume {
	parsed := emptyParsedResume()
	m, ok := obj[key].(map[string]any)
	if !ok {
		return parsed
	}
	parsed.FullName = stringField(m, "full_name", "")
	parsed.Email = stringField(m, "email", "")
	parsed.Phone = stringField(m, "phone", "")
	parsed.Skills = stringSliceField(m, "skills")

	if items, ok := m["experience"].([]any); ok {
		for _, item := range items {
			e, ok := item.(map[string]any)
			if !ok {
				continue
			}
			parsed.Experience = append(parsed.Experience, types.ExperienceEntry{
				Role:        stringField(e, "role", ""),
				Company:     stringField(e, "company", ""),
				Dates:       stringField(e, "dates", ""),
				Description: stringField(e, "description", ""),
			})
		}
	}
	if items, ok := m["education"].([]any); ok {
		for _, item := range items {
			e, ok := item.(map[string]any)
			if !ok {
				continue
			}
			parsed.Education = append(parsed.Education, types.EducationEntry{
				Degree:      stringField(e, "degree", ""),
				Institution: stringField(e, "institution", ""),
				Dates:       stringField(e, "dates", ""),
			})
		}
	}
	return parsed
}

func recommendationsField(obj map[string]any, key string) types.Recommendations {
	recs := emptyRecommendations()
	m, ok := obj[key].(map[string]any)
	if !ok {
		return recs
	}
	recs.HighPriority = stringSliceField(m, "high_priority")
	recs.MediumPriority = stringSliceField(m, "medium_priority")
	recs.LowPriority = stringSliceField(m, "low_priority")
	return recs
}
