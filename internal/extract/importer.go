package extract

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jonathan/resume-doctor/internal/llm"
	"github.com/jonathan/resume-doctor/internal/prompts"
	"github.com/jonathan/resume-doctor/internal/types"
)

// maxImportChars caps text sent to the model, roughly five pages.
const maxImportChars = 25000

// Import error codes surfaced to clients. SUSPICIOUS_CONTENT and NOT_RESUME
// originate from the model per the extraction prompt contract.
const (
	CodeProcessingFailed = "PROCESSING_FAILED"
)

// Importer turns PDFs and pasted text into builder-format resume data via
// the model's structured extraction.
type Importer struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewImporter creates an importer.
func NewImporter(client llm.Client, logger *zap.Logger) *Importer {
	return &Importer{llm: client, logger: logger}
}

// FromPDF extracts resume data from PDF bytes using the model's multimodal
// document support. The result is always a well-formed envelope; model and
// transport failures become a PROCESSING_FAILED result, not an error.
func (im *Importer) FromPDF(ctx context.Context, pdf []byte) types.ImportResult {
	prompt := prompts.Format(prompts.MustGet("extraction.json", "import"), map[string]string{
		"InputType": "PDF Resume Document",
		"Content":   "{PDF_CONTENT_ATTACHED}",
	})

	raw, err := im.llm.GenerateJSONWithPDF(ctx, pdf, prompt, llm.TierStandard)
	if err != nil {
		im.logger.Error("pdf import model call failed", zap.Error(err))
		return processingFailed()
	}
	return im.decode(raw)
}

// FromText extracts resume data from pasted text. importType selects the
// prompt framing: "linkedin" for profile pastes, anything else is treated
// as free-form career text.
func (im *Importer) FromText(ctx context.Context, text, importType string) types.ImportResult {
	if len(text) > maxImportChars {
		text = text[:maxImportChars]
	}

	inputType := "Career Description / Resume Text"
	if importType == "linkedin" {
		inputType = "LinkedIn Profile Data (About section and Experience)"
	}

	prompt := prompts.Format(prompts.MustGet("extraction.json", "import"), map[string]string{
		"InputType": inputType,
		"Content":   text,
	})

	raw, err := im.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		im.logger.Error("text import model call failed", zap.Error(err))
		return processingFailed()
	}
	return im.decode(raw)
}

// decode parses the model's envelope and normalizes it so callers never see
// nil sections on a successful import.
func (im *Importer) decode(raw string) types.ImportResult {
	var result types.ImportResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		im.logger.Warn("import response was not valid JSON", zap.Error(err))
		return processingFailed()
	}

	if result.Success {
		if result.Data == nil {
			return processingFailed()
		}
		applyDefaults(result.Data)
		result.Error = nil
		return result
	}

	if result.Error == nil || result.Error.Code == "" {
		return processingFailed()
	}
	result.Data = nil
	return result
}

// applyDefaults ensures every section slice is non-nil so the JSON response
// carries empty arrays instead of null.
func applyDefaults(data *types.ResumeData) {
	if data.Experience == nil {
		data.Experience = []types.ExperienceItem{}
	}
	if data.Education == nil {
		data.Education = []types.EducationItem{}
	}
	if data.Skills == nil {
		data.Skills = []types.SkillGroup{}
	}
	if data.Projects == nil {
		data.Projects = []types.ProjectItem{}
	}
	if data.Certifications == nil {
		data.Certifications = []types.CertificationItem{}
	}
	if data.Languages == nil {
		data.Languages = []types.LanguageItem{}
	}
}

func processingFailed() types.ImportResult {
	return types.ImportResult{
		Success: false,
		Error: &types.ImportError{
			Code:    CodeProcessingFailed,
			Message: "Something went wrong while processing your resume. Please try again.",
		},
	}
}
