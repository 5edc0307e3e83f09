package server

import (
	"encoding/json"
	"net/http"
)

// ErrorCode is a stable machine-readable error identifier. Clients branch
// on these; messages are free to change.
type ErrorCode string

// Error codes by HTTP status family.
const (
	// File validation (400)
	CodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	CodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	CodeFileTooSmall    ErrorCode = "FILE_TOO_SMALL"
	CodeFileCorrupted   ErrorCode = "FILE_CORRUPTED"

	// Authentication (401)
	CodeAuthRequired  ErrorCode = "AUTH_REQUIRED"
	CodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"

	// Authorization (403)
	CodeSubscriptionRequired ErrorCode = "SUBSCRIPTION_REQUIRED"
	CodeFeatureLocked        ErrorCode = "FEATURE_LOCKED"

	// Rate limiting (429)
	CodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeDailyQuotaExceeded ErrorCode = "DAILY_QUOTA_EXCEEDED"

	// Processing (500)
	CodeAnalysisFailed      ErrorCode = "ANALYSIS_FAILED"
	CodePDFExtractionFailed ErrorCode = "PDF_EXTRACTION_FAILED"
	CodeAIServiceError      ErrorCode = "AI_SERVICE_ERROR"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"

	// Import surface
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
)

// errorBody is the JSON error envelope. System details never appear here;
// messages are written for end users.
type errorBody struct {
	Error         string    `json:"error"`
	Message       string    `json:"message"`
	Code          ErrorCode `json:"code"`
	Action        string    `json:"action,omitempty"`
	UpgradeURL    string    `json:"upgrade_url,omitempty"`
	UpgradeHint   string    `json:"upgrade_hint,omitempty"`
	RetryAfter    int       `json:"retry_after,omitempty"`
	CurrentTier   string    `json:"current_tier,omitempty"`
	RequiredTiers []string  `json:"required_tiers,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}

func writeAuthRequired(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, errorBody{
		Error:   "Sign In Required",
		Message: "Please sign in to use this feature.",
		Code:    CodeAuthRequired,
		Action:  "Create a free account to get started.",
	})
}

func writeInvalidAPIKey(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, errorBody{
		Error:   "Session Expired",
		Message: "Your session has expired.",
		Code:    CodeInvalidAPIKey,
		Action:  "Please refresh the page and try again.",
	})
}

func writeAnalysisFailed(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, errorBody{
		Error:   "Analysis Failed",
		Message: "Something went wrong while analyzing your resume.",
		Code:    CodeAnalysisFailed,
		Action:  "Please try again. If the problem persists, try a different PDF.",
	})
}

func writeAIServiceError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, errorBody{
		Error:   "Analysis Temporarily Unavailable",
		Message: "Our AI service is temporarily busy.",
		Code:    CodeAIServiceError,
		Action:  "Please try again in a few seconds.",
	})
}
