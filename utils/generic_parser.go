package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayparse/reservation-import/dto"
)

const (
	// Conventional hospitality defaults when the document names a date but
	// no time of day.
	defaultCheckInTime  = "15:00"
	defaultCheckOutTime = "11:00"

	// How far past a check-in/check-out label a date is still considered to
	// belong to it.
	dateLabelReach = 120
)

// The generic parser carries the widest, most defensive pattern set: it runs
// on documents from providers nobody modeled, in whichever of the three
// supported languages the property booked in.
var (
	genericBoilerplateRe = regexp.MustCompile(
		`^(CONFIRMACION|CONFIRMATION|CONFERMA|RESERVA\b|RESERVATION|BOOKING\b|PRENOTAZIONE|ITINERAR|INVOICE|FACTURA|FATTURA|RECEIPT|RECIBO|RICEVUTA)`)

	// Ordered confirmation-label ladder, most specific first.
	genericConfRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)n[uú]mero de confirmaci[oó]n[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
		regexp.MustCompile(`(?i)numero di conferma[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
		regexp.MustCompile(`(?i)codice di conferma[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
		regexp.MustCompile(`(?i)confirmation\s+(?:number|code)[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
		regexp.MustCompile(`(?i)booking\s+(?:number|reference|id)[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
		regexp.MustCompile(`(?i)\b(?:reference|referencia|riferimento|localizador)[:#.\s]*([A-Za-z0-9][A-Za-z0-9.\-/]*)`),
	}

	genericAddressRe = regexp.MustCompile(`(?i)^(?:direcci[oó]n|indirizzo|address)\b[:\s]*(.*)`)
	genericPhoneRe   = regexp.MustCompile(`(?i)\b(?:tel[eé]fono|telefono|phone|tel)\b[:. ]*(\+?\d[\d ().\-]{5,})`)
	genericGuestsRe  = regexp.MustCompile(`(?i)(\d+)\s+(?:viajeros?|travell?ers?|ospiti|guests?|hu[eé]spedes|personas?|adults?|adultos?)`)

	genericCheckinLabelRe  = regexp.MustCompile(`(?i)\b(?:check[ -]?in|arrival|arrivo|entrada|llegada)\b`)
	genericCheckoutLabelRe = regexp.MustCompile(`(?i)\b(?:check[ -]?out|departure|partenza|salida)\b`)

	genericISODateRe     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	genericNumericDateRe = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})(?:[/.](\d{2,4}))?\b`)
	genericDayMonthRe    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+)?(\p{L}+)`)

	genericTableDaysRe = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})\s+(?:(\d{1,2})\s+)?(?:UNIDAD(?:ES)?|NOCHES?|NOTTI|NIGHTS?|UNITS?)\b`)

	// Label vocabulary that must never be mistaken for a confirmation value
	// when a line folds two labels together.
	genericConfStopwords = map[string]bool{
		"conferma": true, "confirmacion": true, "confirmation": true,
		"reference": true, "referencia": true, "riferimento": true,
		"reserva": true, "reservation": true, "prenotazione": true,
		"booking": true, "localizador": true, "numero": true,
		"number": true, "codice": true, "code": true, "codigo": true,
	}
)

// snippetDate is one resolved date candidate from a labeled snippet.
type snippetDate struct {
	date         time.Time
	explicitYear bool
	clock        string
}

// ParseGeneric is the fallback extraction strategy for unrecognized
// providers: best effort, label-driven, multilingual. Missing fields stay
// absent, never errors.
func ParseGeneric(text string, now time.Time) dto.ParsedReservation {
	lines := SplitLines(text)
	parsed := dto.ParsedReservation{Provider: dto.ProviderOther}

	parsed.Hotel.Name = genericTitle(lines)
	parsed.ConfirmationNumber = genericConfirmation(text)
	parsed.Hotel.Address = genericAddress(lines)
	parsed.Hotel.Phone = firstGroup(genericPhoneRe, text)

	if guests := firstGroup(genericGuestsRe, text); guests != "" {
		if n, err := strconv.Atoi(guests); err == nil {
			parsed.Hotel.NumberOfGuests = intPtr(n)
		}
	}

	genericDates(lines, text, now, &parsed)

	return parsed
}

// genericTitle takes the first line long enough to be a property name that
// is not a boilerplate heading.
func genericTitle(lines []string) string {
	for _, line := range lines {
		if len(line) < 6 || !hasLetter(line) {
			continue
		}
		if genericBoilerplateRe.MatchString(normLine(line)) {
			continue
		}
		return line
	}
	return ""
}

// genericConfirmation walks the label ladder in priority order. A bare label
// word with no digits and fewer than 8 characters is rejected so headings
// like "CONFERMA" cannot masquerade as a confirmation code.
func genericConfirmation(text string) string {
	for _, re := range genericConfRes {
		m := firstGroup(re, text)
		if m == "" {
			continue
		}
		if genericConfStopwords[strings.ToLower(StripAccents(m))] {
			continue
		}
		if strings.ContainsAny(m, "0123456789") || len(m) >= 8 {
			return m
		}
	}
	return ""
}

func genericAddress(lines []string) string {
	for i, line := range lines {
		m := genericAddressRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if addr := strings.TrimSpace(m[1]); addr != "" {
			return addr
		}
		if i+1 < len(lines) && lines[i+1] != "" {
			return lines[i+1]
		}
	}
	return ""
}

// genericDates anchors on check-in/check-out labels and parses the snippet
// that follows each one; when the labels yield nothing, it falls back to the
// tabular layout heuristic with the full month-name union.
func genericDates(lines []string, text string, now time.Time, parsed *dto.ParsedReservation) {
	baseYear := DetectBaseYear(text, now)

	in, inOK := genericLabeledDate(text, genericCheckinLabelRe, baseYear, now)
	out, outOK := genericLabeledDate(text, genericCheckoutLabelRe, baseYear, now)

	if !inOK && !outOK {
		tableLayoutDates(lines, genericTableDaysRe, baseYear, now, parsed)
		if parsed.StartDateTime == "" && parsed.EndDateTime == "" {
			return
		}
		if parsed.Hotel.CheckInTime == "" {
			parsed.Hotel.CheckInTime = defaultCheckInTime
		}
		if parsed.Hotel.CheckOutTime == "" {
			parsed.Hotel.CheckOutTime = defaultCheckOutTime
		}
		return
	}

	if inOK {
		if in.clock == "" {
			in.clock = defaultCheckInTime
		}
		parsed.Hotel.CheckInTime = in.clock
		parsed.StartDateTime = FormatDateTime(in.date, in.clock)
	}
	if outOK {
		if out.clock == "" {
			out.clock = defaultCheckOutTime
		}
		if inOK && !out.explicitYear {
			end := time.Date(in.date.Year(), out.date.Month(), out.date.Day(), 0, 0, 0, 0, time.Local)
			out.date = FixCheckoutYear(in.date, end)
		}
		parsed.Hotel.CheckOutTime = out.clock
		parsed.EndDateTime = FormatDateTime(out.date, out.clock)
	}
}

// genericLabeledDate tries every occurrence of the label and parses the text
// within dateLabelReach characters after it.
func genericLabeledDate(text string, labelRe *regexp.Regexp, baseYear int, now time.Time) (snippetDate, bool) {
	for _, loc := range labelRe.FindAllStringIndex(text, -1) {
		end := loc[1] + dateLabelReach
		if end > len(text) {
			end = len(text)
		}
		snippet := text[loc[1]:end]
		if sd, ok := parseDateSnippet(snippet, baseYear, now); ok {
			return sd, true
		}
	}
	return snippetDate{}, false
}

// parseDateSnippet tries, in order: ISO YYYY-MM-DD, numeric D/M[/Y], then
// "D monthname" via the shared locale resolver. The first hit wins; a clock
// anywhere in the snippet rides along.
func parseDateSnippet(snippet string, baseYear int, now time.Time) (snippetDate, bool) {
	clock := ""
	if c := clockRe.FindString(snippet); c != "" {
		clock = NormalizeClock(c)
	}

	if m := genericISODateRe.FindStringSubmatch(snippet); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if date, ok := buildDate(y, mo, d); ok {
			return snippetDate{date: date, explicitYear: true, clock: clock}, true
		}
	}

	for _, m := range genericNumericDateRe.FindAllStringSubmatch(snippet, -1) {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			if date, ok := buildDate(y, mo, d); ok {
				return snippetDate{date: date, explicitYear: true, clock: clock}, true
			}
		} else if date, ok := ResolveDate(d, mo, baseYear, now); ok {
			return snippetDate{date: date, clock: clock}, true
		}
	}

	for _, m := range genericDayMonthRe.FindAllStringSubmatch(snippet, -1) {
		d, _ := strconv.Atoi(m[1])
		mo, ok := ResolveMonth(m[2])
		if !ok {
			continue
		}
		if date, found := ResolveDate(d, mo, baseYear, now); found {
			return snippetDate{date: date, clock: clock}, true
		}
	}

	return snippetDate{}, false
}

// buildDate validates a concrete year/month/day triple.
func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}
