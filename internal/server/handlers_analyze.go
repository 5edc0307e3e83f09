package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-doctor/internal/analysis"
	"github.com/jonathan/resume-doctor/internal/extract"
	"github.com/jonathan/resume-doctor/internal/server/identity"
	"github.com/jonathan/resume-doctor/internal/server/ratelimit"
	"github.com/jonathan/resume-doctor/internal/types"
)

// analyzeResponse is the success envelope for the analysis endpoints.
type analyzeResponse struct {
	Type         string `json:"type"`
	Result       any    `json:"result"`
	TierRequired string `json:"tier_required"`
	UserTier     string `json:"user_tier"`
	UserID       string `json:"user_id"`
}

// handleVitals runs the lightweight scoring check. Authentication is
// optional: invalid or missing credentials degrade to a guest identity
// keyed by client IP.
func (s *Server) handleVitals(w http.ResponseWriter, r *http.Request) {
	pdf, ok := s.readResumeUpload(w, r)
	if !ok {
		return
	}

	id := s.resolver.ResolveOptional(r)
	if _, ok := s.consumeQuota(w, r, id, types.EndpointVitals); !ok {
		return
	}

	start := time.Now()
	report, err := s.analysis.VitalsCheck(r.Context(), pdf)
	s.metrics.AnalysisDuration.WithLabelValues(string(types.EndpointVitals)).Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeAnalysisError(w, err, types.EndpointVitals)
		return
	}

	s.metrics.AnalysesTotal.WithLabelValues(string(types.EndpointVitals), string(id.Tier)).Inc()
	writeJSON(w, http.StatusOK, analyzeResponse{
		Type:         string(types.EndpointVitals),
		Result:       report,
		TierRequired: string(s.policy.RequiredTier(types.EndpointVitals)),
		UserTier:     string(id.Tier),
		UserID:       id.Label(),
	})
}

// handleDeepScan runs the full AI audit. Authentication is required and the
// tier must have deep scan access; the access check runs before any quota is
// consumed.
func (s *Server) handleDeepScan(w http.ResponseWriter, r *http.Request) {
	pdf, ok := s.readResumeUpload(w, r)
	if !ok {
		return
	}

	id, err := s.resolver.Resolve(r)
	if err != nil {
		if errors.Is(err, identity.ErrMissingAPIKey) {
			writeAuthRequired(w)
		} else {
			writeInvalidAPIKey(w)
		}
		return
	}

	if !s.policy.Allows(id.Tier, types.EndpointDeepScan) {
		allowed := s.policy.AllowedTiers(types.EndpointDeepScan)
		required := make([]string, 0, len(allowed))
		for _, tier := range allowed {
			required = append(required, string(tier))
		}
		writeError(w, http.StatusForbidden, errorBody{
			Error:         "Pro Feature",
			Message:       "Deep Scan is a Pro feature. Upgrade to unlock comprehensive AI analysis.",
			Code:          CodeSubscriptionRequired,
			Action:        "Upgrade now to get detailed feedback on every section of your resume.",
			UpgradeURL:    "/pricing",
			CurrentTier:   string(id.Tier),
			RequiredTiers: required,
		})
		return
	}

	if _, ok := s.consumeQuota(w, r, id, types.EndpointDeepScan); !ok {
		return
	}

	jobDescription := r.FormValue("job_description")

	start := time.Now()
	report, err := s.analysis.DeepScan(r.Context(), pdf, jobDescription)
	s.metrics.AnalysisDuration.WithLabelValues(string(types.EndpointDeepScan)).Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeAnalysisError(w, err, types.EndpointDeepScan)
		return
	}

	s.metrics.AnalysesTotal.WithLabelValues(string(types.EndpointDeepScan), string(id.Tier)).Inc()
	writeJSON(w, http.StatusOK, analyzeResponse{
		Type:         string(types.EndpointDeepScan),
		Result:       report,
		TierRequired: string(s.policy.RequiredTier(types.EndpointDeepScan)),
		UserTier:     string(id.Tier),
		UserID:       id.Label(),
	})
}

// readResumeUpload reads and validates the multipart "file" field. On
// failure it writes the error response and returns ok=false.
func (s *Server) readResumeUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	maxBytes := int64(s.cfg.MaxFileSizeBytes())
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64*1024) // form framing overhead

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errorBody{
			Error:   "Invalid File Type",
			Message: "Please upload a PDF file. Other formats are not supported.",
			Code:    CodeInvalidFileType,
			Action:  "Convert your resume to PDF format and try again.",
		})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorBody{
			Error:   "File Too Large",
			Message: fmt.Sprintf("Your resume file exceeds the %dMB limit.", s.cfg.MaxFileSizeMB),
			Code:    CodeFileTooLarge,
			Action:  "Compress your PDF or remove embedded images to reduce file size.",
		})
		return nil, false
	}

	if verr := extract.ValidatePDF(data, extract.AnalyzeMinSize, s.cfg.MaxFileSizeBytes()); verr != nil {
		writeError(w, http.StatusBadRequest, s.uploadErrorBody(verr))
		return nil, false
	}
	return data, true
}

// uploadErrorBody maps byte-level validation failures to the error envelope.
func (s *Server) uploadErrorBody(verr *extract.ValidationError) errorBody {
	switch verr.Code {
	case extract.CodeFileTooLarge:
		return errorBody{
			Error:   "File Too Large",
			Message: fmt.Sprintf("Your resume file exceeds the %dMB limit.", s.cfg.MaxFileSizeMB),
			Code:    CodeFileTooLarge,
			Action:  "Compress your PDF or remove embedded images to reduce file size.",
		}
	case extract.CodeFileTooSmall:
		return errorBody{
			Error:   "Empty File",
			Message: "The uploaded file appears to be empty or corrupted.",
			Code:    CodeFileTooSmall,
			Action:  "Please upload a valid PDF resume.",
		}
	default:
		return errorBody{
			Error:   "Invalid File Type",
			Message: "Please upload a PDF file. Other formats are not supported.",
			Code:    CodeInvalidFileType,
			Action:  "Convert your resume to PDF format and try again.",
		}
	}
}

// consumeQuota takes one quota slot for the identity. On rejection it writes
// the 429 response with rate-limit headers and returns ok=false. Consumed
// quota is never refunded if a later step fails.
func (s *Server) consumeQuota(w http.ResponseWriter, r *http.Request, id types.Identity, kind types.EndpointKind) (ratelimit.Decision, bool) {
	dec, err := s.tracker.CheckAndConsume(r.Context(), id, kind)
	if err == nil {
		s.setRateLimitHeaders(w, dec)
		return dec, true
	}

	var quotaErr *ratelimit.QuotaExceededError
	if errors.As(err, &quotaErr) {
		s.metrics.QuotaRejections.WithLabelValues(string(kind), string(id.Tier)).Inc()
		s.setRateLimitHeaders(w, dec)
		retryAfter := int(time.Until(quotaErr.ResetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		writeError(w, http.StatusTooManyRequests, errorBody{
			Error:       "Daily Limit Reached",
			Message:     "You've used all your resume scans for today.",
			Code:        CodeDailyQuotaExceeded,
			Action:      "Upgrade to Pro for more daily scans, or try again tomorrow.",
			UpgradeURL:  "/pricing",
			UpgradeHint: quotaErr.UpgradeHint,
			RetryAfter:  retryAfter,
		})
		return dec, false
	}

	s.logger.Error("quota check failed", zap.Error(err), zap.String("key", id.RateKey()))
	writeError(w, http.StatusInternalServerError, errorBody{
		Error:   "Something Went Wrong",
		Message: "An unexpected error occurred.",
		Code:    CodeInternalError,
		Action:  "Please try again. Our team has been notified.",
	})
	return dec, false
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, dec ratelimit.Decision) {
	if dec.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", dec.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", dec.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", dec.ResetAt.Unix()))
	}
}

// writeAnalysisError distinguishes upstream AI failures from local ones so
// clients see a stable code for each.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error, kind types.EndpointKind) {
	var aiErr *analysis.AIServiceError
	if errors.As(err, &aiErr) {
		s.metrics.AIFailuresTotal.Inc()
		s.logger.Error("AI service call failed",
			zap.String("endpoint", string(kind)), zap.Error(err))
		writeAIServiceError(w)
		return
	}

	s.logger.Error("analysis failed",
		zap.String("endpoint", string(kind)), zap.Error(err))
	writeAnalysisFailed(w)
}
