package dto

import "errors"

// Custom errors
var (
	ErrNoFile          = errors.New("no file provided")
	ErrNotPDF          = errors.New("file is not a PDF")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrNoText          = errors.New("could not read any text from the PDF")
	ErrTextTooShort    = errors.New("extracted text too short, PDF is likely scanned or protected")
	ErrImportBusy      = errors.New("an import is already running for this context")
)

// ImportStatus says what the client should do with the result.
type ImportStatus string

const (
	// StatusParsed means the parse passed the robustness gate; the client
	// should confirm with the user before writing to the form.
	StatusParsed ImportStatus = "parsed"
	// StatusNeedsReview means no parser produced a robust result; the best
	// candidate plus diagnostics are returned instead of a silent apply.
	StatusNeedsReview ImportStatus = "needs_review"
)

// DiagnosticsReport is the debug view shown when confidence is low: whatever
// fields were extracted, plus the start of the reconstructed text so it can
// be copied out for tuning the extraction rules.
type DiagnosticsReport struct {
	Preview        ParsedReservation `json:"preview"`
	Score          float64           `json:"score"`
	RawTextExcerpt string            `json:"raw_text_excerpt"`
	RawTextLength  int               `json:"raw_text_length"`
}

// ImportResponse is the final response structure for an import attempt.
type ImportResponse struct {
	ImportID    string             `json:"import_id"`
	Status      ImportStatus       `json:"status"`
	Provider    Provider           `json:"provider"`
	Reservation ParsedReservation  `json:"reservation"`
	Diagnostics *DiagnosticsReport `json:"diagnostics,omitempty"`
	PageCount   int                `json:"page_count"`
	ProcessedAt string             `json:"processed_at"`
}

// PreviewResponse is the always-diagnostic view: every parser's result over
// the same reconstructed text.
type PreviewResponse struct {
	ImportID  string                         `json:"import_id"`
	RawText   string                         `json:"raw_text"`
	PageCount int                            `json:"page_count"`
	Parses    map[Provider]ParsedReservation `json:"parses"`
	Scores    map[Provider]float64           `json:"scores"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
