package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-doctor/internal/llm"
	"github.com/jonathan/resume-doctor/internal/prompts"
	"github.com/jonathan/resume-doctor/internal/schemas"
	"github.com/jonathan/resume-doctor/internal/types"
)

// Token-saving truncation limits applied before prompting.
const (
	maxResumeChars = 8000
	maxJDChars     = 3000
	minTextLength  = 50
)

// AIServiceError marks a failure of the upstream generation call, as opposed
// to a local processing failure. Handlers map it to a distinct error code.
type AIServiceError struct {
	Err error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("AI service error: %v", e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}

// TextExtractor pulls plain text out of PDF bytes. Extraction failures
// surface as an empty string.
type TextExtractor func(pdf []byte) string

// Service orchestrates resume analysis: local text checks, the model call,
// normalization, and score blending.
type Service struct {
	llm     llm.Client
	extract TextExtractor
	logger  *zap.Logger
}

// NewService creates an analysis service.
func NewService(client llm.Client, extract TextExtractor, logger *zap.Logger) *Service {
	return &Service{
		llm:     client,
		extract: extract,
		logger:  logger,
	}
}

// VitalsCheck runs the lightweight scoring pass on an uploaded PDF. Text is
// extracted locally and sent to the cheap model tier. An unreadable upload
// returns the unreadable report without consuming a model call; a model
// failure returns an AIServiceError.
func (s *Service) VitalsCheck(ctx context.Context, pdf []byte) (types.Report, error) {
	text := strings.TrimSpace(s.extract(pdf))
	if len(text) < minTextLength {
		s.logger.Warn("insufficient text extracted from upload",
			zap.Int("chars", len(text)))
		return UnreadableReport(), nil
	}

	if len(text) > maxResumeChars {
		text = text[:maxResumeChars]
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "vitals"), map[string]string{
		"ResumeText": text,
	})

	raw, err := s.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return types.Report{}, &AIServiceError{Err: err}
	}

	report := Normalize(raw)
	s.checkShape(report, "vitals")
	return report, nil
}

// DeepScan runs the full audit. The PDF goes to the model directly for
// multimodal analysis while local text statistics are computed in parallel;
// the two are then blended into the final score.
func (s *Service) DeepScan(ctx context.Context, pdf []byte, jobDescription string) (types.FinalReport, error) {
	var (
		raw   string
		stats types.TextStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prompt := prompts.Format(prompts.MustGet("analysis.json", "deep_scan"), map[string]string{
			"JobDescriptionSection": s.jdSection(jobDescription),
		})
		out, err := s.llm.GenerateJSONWithPDF(gctx, pdf, prompt, llm.TierAdvanced)
		if err != nil {
			return &AIServiceError{Err: err}
		}
		raw = out
		return nil
	})
	g.Go(func() error {
		stats = ComputeTextStats(s.extract(pdf))
		return nil
	})

	if err := g.Wait(); err != nil {
		return types.FinalReport{}, err
	}

	report := Normalize(raw)
	s.checkShape(report, "deep_scan")
	return Merge(report, stats), nil
}

func (s *Service) jdSection(jobDescription string) string {
	jd := strings.TrimSpace(jobDescription)
	if jd == "" {
		return prompts.MustGet("analysis.json", "no_jd_note")
	}
	if len(jd) > maxJDChars {
		jd = jd[:maxJDChars]
	}
	return prompts.Format(prompts.MustGet("analysis.json", "jd_section"), map[string]string{
		"JobDescription": jd,
	})
}

// checkShape validates the normalized report against the published schema.
// Mismatches are logged, never surfaced: the normalizer already guarantees
// a usable structure, so a failure here indicates schema drift to fix.
func (s *Service) checkShape(report types.Report, endpoint string) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := schemas.ValidateReport(data); err != nil {
		s.logger.Warn("normalized report failed schema validation",
			zap.String("endpoint", endpoint),
			zap.Error(err))
	}
}
