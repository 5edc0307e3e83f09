package types

// Section is per-section feedback from the deep scan analysis.
type Section struct {
	SectionName     string   `json:"section_name"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	ActionableFixes []string `json:"actionable_fixes"`
}

// ExperienceEntry is a work history item extracted from the resume.
type ExperienceEntry struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// EducationEntry is an education history item extracted from the resume.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Dates       string `json:"dates"`
}

// ParsedResume holds the structured resume content the model extracted
// alongside its scores.
type ParsedResume struct {
	FullName   string            `json:"full_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
}

// Recommendations groups improvement suggestions by priority.
type Recommendations struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	LowPriority    []string `json:"low_priority"`
}

// Report is the fixed-shape analysis result. Every field is always present:
// the normalizer substitutes documented defaults for anything the model
// omitted or corrupted, so downstream code never checks for missing keys.
type Report struct {
	OverallScore    int             `json:"overall_score"`
	ImpactScore     int             `json:"impact_score"`
	BrevityScore    int             `json:"brevity_score"`
	StyleScore      int             `json:"style_score"`
	SummaryFeedback string          `json:"summary_feedback"`
	ExperienceLevel string          `json:"experience_level"`
	Industry        string          `json:"industry"`
	Sections        []Section       `json:"sections"`
	MissingKeywords []string        `json:"missing_keywords"`
	ParsedData      ParsedResume    `json:"parsed_data"`
	Recommendations Recommendations `json:"recommendations"`
}

// TextStats are deterministic measurements computed locally from the resume
// text, independent of the AI call.
type TextStats struct {
	Readability     float64 `json:"readability"`
	StrongVerbRatio float64 `json:"strong_verb_ratio"`
	MetricCount     int     `json:"metric_count"`
	WordCount       int     `json:"word_count"`
	HasContactInfo  bool    `json:"has_contact_info"`
}

// FinalReport is a Report whose overall score has been blended with the
// local text statistics.
type FinalReport struct {
	Report
	TextStats TextStats `json:"text_stats"`
}
