package types

// PersonalInfo is the contact block of an imported resume.
// FullName and Email are required by the builder format; the importer fills
// them with empty strings rather than dropping the keys.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceItem is a builder-format work experience entry.
type ExperienceItem struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// EducationItem is a builder-format education entry.
type EducationItem struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// SkillGroup is a categorized skill list.
type SkillGroup struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Order    int      `json:"order"`
}

// ProjectItem is a builder-format project entry.
type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Link         string   `json:"link,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Order        int      `json:"order"`
}

// CertificationItem is a builder-format certification entry.
type CertificationItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer,omitempty"`
	Date         string `json:"date,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
	URL          string `json:"url,omitempty"`
	Order        int    `json:"order"`
}

// LanguageItem is a spoken-language proficiency entry.
type LanguageItem struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// ResumeData is the builder-format resume produced by the import endpoints.
type ResumeData struct {
	PersonalInfo   PersonalInfo        `json:"personalInfo"`
	Summary        string              `json:"summary,omitempty"`
	Experience     []ExperienceItem    `json:"experience"`
	Education      []EducationItem     `json:"education"`
	Skills         []SkillGroup        `json:"skills"`
	Projects       []ProjectItem       `json:"projects"`
	Certifications []CertificationItem `json:"certifications"`
	Languages      []LanguageItem      `json:"languages"`
}

// ImportError is a stable machine-readable import failure.
type ImportError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult is the success/error envelope for resume import calls.
type ImportResult struct {
	Success bool         `json:"success"`
	Data    *ResumeData  `json:"data,omitempty"`
	Error   *ImportError `json:"error,omitempty"`
}
