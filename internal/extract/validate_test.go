package extract

import (
	"bytes"
	"testing"
)

func fakePDF(size int) []byte {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), size)...)
	return data[:size]
}

func TestValidatePDF_Valid(t *testing.T) {
	if err := ValidatePDF(fakePDF(500), AnalyzeMinSize, 5*1024*1024); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestValidatePDF_TooLarge(t *testing.T) {
	err := ValidatePDF(fakePDF(ImportMaxSize+1), ImportMinSize, ImportMaxSize)
	if err == nil || err.Code != CodeFileTooLarge {
		t.Errorf("expected FILE_TOO_LARGE, got %v", err)
	}
}

func TestValidatePDF_TooSmall(t *testing.T) {
	err := ValidatePDF([]byte("%PDF"), AnalyzeMinSize, 5*1024*1024)
	if err == nil || err.Code != CodeFileTooSmall {
		t.Errorf("expected FILE_TOO_SMALL, got %v", err)
	}
}

func TestValidatePDF_WrongMagic(t *testing.T) {
	data := bytes.Repeat([]byte("A"), 500)
	err := ValidatePDF(data, AnalyzeMinSize, 5*1024*1024)
	if err == nil || err.Code != CodeInvalidFileType {
		t.Errorf("expected INVALID_FILE_TYPE, got %v", err)
	}
}

func TestValidatePDF_SizeCheckedBeforeMagic(t *testing.T) {
	// An oversized non-PDF reports size first; the magic check never sees
	// unbounded input.
	data := bytes.Repeat([]byte("A"), ImportMaxSize+1)
	err := ValidatePDF(data, ImportMinSize, ImportMaxSize)
	if err == nil || err.Code != CodeFileTooLarge {
		t.Errorf("expected FILE_TOO_LARGE, got %v", err)
	}
}

func TestText_MalformedPDF(t *testing.T) {
	if got := Text([]byte("not a pdf at all")); got != "" {
		t.Errorf("Text on garbage = %q, want empty", got)
	}
	if got := Text(nil); got != "" {
		t.Errorf("Text on nil = %q, want empty", got)
	}
}
