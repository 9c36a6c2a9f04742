package dto

import (
	"mime/multipart"
	"strings"
)

// ImportRequest represents one reservation PDF import attempt.
type ImportRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Provider Provider              `form:"provider"`
	Context  string                `form:"context"`
}

// Validate performs basic validation on the request. The PDF check is
// extension/MIME only; there is no magic-byte sniffing.
func (r *ImportRequest) Validate() error {
	if r.File == nil {
		return ErrNoFile
	}
	if !IsPDFUpload(r.File) {
		return ErrNotPDF
	}
	if r.Provider == "" {
		r.Provider = ProviderAuto
	}
	if !r.Provider.IsValid() {
		return ErrUnknownProvider
	}
	if r.Context == "" {
		r.Context = "new"
	}
	return nil
}

// IsPDFUpload accepts files with a .pdf suffix or an application/pdf
// content type.
func IsPDFUpload(fh *multipart.FileHeader) bool {
	if strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return true
	}
	return strings.EqualFold(fh.Header.Get("Content-Type"), "application/pdf")
}

// ApplyRequest carries a parsed reservation plus the current form state.
type ApplyRequest struct {
	Reservation ParsedReservation `json:"reservation" binding:"required"`
	Form        FormValues        `json:"form"`
}
