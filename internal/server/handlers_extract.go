package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-doctor/internal/extract"
	"github.com/jonathan/resume-doctor/internal/types"
)

// minImportTextLength rejects pastes too short to extract anything from.
const minImportTextLength = 50

// handleImportPDF extracts builder-format resume data from an uploaded PDF.
// Unauthenticated by design: the import surface predates the gateway's
// credential forwarding and the result contains only the caller's own data.
func (s *Server) handleImportPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, extract.ImportMaxSize+64*1024)

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeImportError(w, http.StatusBadRequest, "INVALID_FILE",
			"Please upload a PDF file.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeImportError(w, http.StatusBadRequest, "INVALID_FILE",
			"Your file is too large (max 2MB). Try compressing the PDF or removing images.")
		return
	}

	if verr := extract.ValidatePDF(data, extract.ImportMinSize, extract.ImportMaxSize); verr != nil {
		s.writeImportError(w, http.StatusBadRequest, "INVALID_FILE", verr.Message)
		return
	}

	result := s.importer.FromPDF(r.Context(), data)
	s.writeImportResult(w, "pdf", result)
}

// handleImportText extracts builder-format resume data from pasted text.
// import_type selects the prompt framing: "linkedin" or "text".
func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	importType := r.FormValue("import_type")
	if importType != "linkedin" {
		importType = "text"
	}

	if len(strings.TrimSpace(text)) < minImportTextLength {
		s.writeImportError(w, http.StatusBadRequest, string(CodeInsufficientContent),
			"The content is too short. Please provide more details about your experience.")
		return
	}

	result := s.importer.FromText(r.Context(), text, importType)
	s.writeImportResult(w, importType, result)
}

// writeImportResult maps the import envelope to a status code: success 200,
// model rejections 422, processing failures 500.
func (s *Server) writeImportResult(w http.ResponseWriter, source string, result types.ImportResult) {
	status := http.StatusOK
	metricStatus := "success"
	if !result.Success {
		metricStatus = "rejected"
		status = http.StatusUnprocessableEntity
		if result.Error != nil && result.Error.Code == extract.CodeProcessingFailed {
			status = http.StatusInternalServerError
			metricStatus = "failed"
		}
	}

	s.metrics.ImportsTotal.WithLabelValues(source, metricStatus).Inc()
	writeJSON(w, status, result)
}

func (s *Server) writeImportError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, types.ImportResult{
		Success: false,
		Error: &types.ImportError{
			Code:    code,
			Message: message,
		},
	})
}
