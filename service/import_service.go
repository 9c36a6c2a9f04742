package service

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stayparse/reservation-import/config"
	"github.com/stayparse/reservation-import/dto"
	"github.com/stayparse/reservation-import/utils"
)

// detectionOrder is the auto-detect ladder. Provider-specific parsers run
// before the generic one so a branded layout is never mistaken for an
// unknown confirmation email.
var detectionOrder = []dto.Provider{dto.ProviderBooking, dto.ProviderAirbnb, dto.ProviderOther}

type ImportService struct {
	pdfProcessor PDFProcessor
	sessions     *SessionRegistry
	cfg          *config.Config
}

func NewImportService(pdfProcessor PDFProcessor, sessions *SessionRegistry, cfg *config.Config) *ImportService {
	return &ImportService{
		pdfProcessor: pdfProcessor,
		sessions:     sessions,
		cfg:          cfg,
	}
}

// Import runs one full attempt for a form context: extract, parse, gate.
// A robust parse comes back as status "parsed"; anything weaker comes back
// as "needs_review" with the diagnostics view attached.
func (s *ImportService) Import(req *dto.ImportRequest) (*dto.ImportResponse, error) {
	session := s.sessions.Get(req.Context)
	if !session.TryAcquire() {
		return nil, dto.ErrImportBusy
	}
	defer session.Release()

	text, pageCount, err := s.extractUpload(req.File)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	best := s.detect(text, req.Provider, now)
	session.RecordResult(req.Provider, best.Provider)

	response := &dto.ImportResponse{
		ImportID:    uuid.NewString(),
		Provider:    best.Provider,
		Reservation: best,
		PageCount:   pageCount,
		ProcessedAt: now.Format(time.RFC3339),
	}

	if utils.IsRobustEnough(best) {
		response.Status = dto.StatusParsed
		log.Printf("Import %s: robust %s parse (conf=%s)", response.ImportID, best.Provider, best.ConfirmationNumber)
		return response, nil
	}

	response.Status = dto.StatusNeedsReview
	response.Diagnostics = s.diagnostics(best, text)
	log.Printf("Import %s: no robust parse, best candidate %s scored %.1f",
		response.ImportID, best.Provider, response.Diagnostics.Score)
	return response, nil
}

// Preview runs every parser over the same reconstructed text and returns the
// full diagnostics view, robust or not.
func (s *ImportService) Preview(req *dto.ImportRequest) (*dto.PreviewResponse, error) {
	text, pageCount, err := s.extractUpload(req.File)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	parses := make(map[dto.Provider]dto.ParsedReservation, len(detectionOrder))
	scores := make(map[dto.Provider]float64, len(detectionOrder))
	for _, provider := range detectionOrder {
		parsed := runParser(provider, text, now)
		parses[provider] = parsed
		scores[provider] = utils.Score(parsed)
	}

	return &dto.PreviewResponse{
		ImportID:  uuid.NewString(),
		RawText:   text,
		PageCount: pageCount,
		Parses:    parses,
		Scores:    scores,
	}, nil
}

// Apply merges a parsed reservation into the caller's current form values
// under the no-clobber policy.
func (s *ImportService) Apply(req *dto.ApplyRequest) dto.FormValues {
	return ApplyToForm(req.Reservation, req.Form)
}

// extractUpload reads the uploaded PDF and reconstructs its text, rejecting
// documents that yield too little to parse (scanned or protected files).
func (s *ImportService) extractUpload(fileHeader *multipart.FileHeader) (string, int, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read upload: %w", err)
	}

	text, pageCount, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		return "", 0, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", pageCount, dto.ErrNoText
	}
	if len(trimmed) < s.cfg.MinTextLength {
		return "", pageCount, dto.ErrTextTooShort
	}
	return text, pageCount, nil
}

// detect picks the parse to surface. A forced provider runs alone; auto
// walks the ladder, stops at the first robust result, and otherwise keeps
// the highest-scoring candidate with earlier providers winning ties.
func (s *ImportService) detect(text string, requested dto.Provider, now time.Time) dto.ParsedReservation {
	if requested != dto.ProviderAuto {
		return runParser(requested, text, now)
	}

	var best dto.ParsedReservation
	bestScore := -1.0
	for _, provider := range detectionOrder {
		parsed := runParser(provider, text, now)
		if utils.IsRobustEnough(parsed) {
			return parsed
		}
		if score := utils.Score(parsed); score > bestScore {
			best = parsed
			bestScore = score
		}
	}
	return best
}

func runParser(provider dto.Provider, text string, now time.Time) dto.ParsedReservation {
	switch provider {
	case dto.ProviderBooking:
		return utils.ParseBooking(text, now)
	case dto.ProviderAirbnb:
		return utils.ParseAirbnb(text, now)
	default:
		return utils.ParseGeneric(text, now)
	}
}

// diagnostics builds the low-confidence debug view: the extracted fields,
// their score, and the start of the reconstructed text for rule tuning.
func (s *ImportService) diagnostics(best dto.ParsedReservation, text string) *dto.DiagnosticsReport {
	excerpt := text
	if runes := []rune(text); len(runes) > s.cfg.RawTextPreviewLimit {
		excerpt = string(runes[:s.cfg.RawTextPreviewLimit])
	}
	return &dto.DiagnosticsReport{
		Preview:        best,
		Score:          utils.Score(best),
		RawTextExcerpt: excerpt,
		RawTextLength:  len(text),
	}
}
