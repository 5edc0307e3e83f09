package extract

import "bytes"

// PDF files start with the %PDF-x.x signature.
var pdfMagic = []byte("%PDF")

// Size limits per upload surface. Analysis uploads allow bigger files than
// import uploads because the whole document goes to the model for import.
const (
	AnalyzeMinSize = 100
	ImportMinSize  = 10
	ImportMaxSize  = 2 * 1024 * 1024
)

// Validation error codes.
const (
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeFileTooSmall    = "FILE_TOO_SMALL"
	CodeInvalidFileType = "INVALID_FILE_TYPE"
)

// ValidationError is a byte-level upload rejection with a stable code and a
// user-facing message.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidatePDF checks uploaded bytes look like a real PDF within size limits.
// Magic byte checking only; structural parsing happens downstream.
func ValidatePDF(data []byte, minSize, maxSize int) *ValidationError {
	if len(data) > maxSize {
		return &ValidationError{
			Code:    CodeFileTooLarge,
			Message: "Your file is too large. Try compressing the PDF or removing images.",
		}
	}
	if len(data) < minSize {
		return &ValidationError{
			Code:    CodeFileTooSmall,
			Message: "The file appears to be empty or corrupted.",
		}
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return &ValidationError{
			Code:    CodeInvalidFileType,
			Message: "Please upload a PDF file. Other formats aren't supported yet.",
		}
	}
	return nil
}
