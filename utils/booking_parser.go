package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayparse/reservation-import/dto"
)

const maxAddressLen = 180

// Label and layout patterns for Booking.com confirmation PDFs. The documents
// come out of text extraction with unpredictable line breaks, so every field
// has a primary pattern and at least one fallback.
var (
	bookingStopRe = regexp.MustCompile(
		`^(DIRECCION\b|TU GRUPO\b|PRECIO\b|ENTRADA\b|SALIDA\b|NUMERO DE CONFIRMACION\b|CODIGO PIN\b|GPS\b|CONFIRMACION\b)`)
	bookingLabelRe = regexp.MustCompile(
		`^(DIRECCION|TELEFONO|TU GRUPO|PRECIO|ENTRADA|SALIDA|NUMERO DE CONFIRMACION|CODIGO PIN|GPS|UNIDADES|CONFIRMACION)\b`)

	bookingAddressRe = regexp.MustCompile(`(?i)direcci[oó]n[:\s]+(.*)`)
	bookingPhoneRe   = regexp.MustCompile(`(?i)tel[eé]fono[:\s]+(.+)`)
	bookingAdultsRe  = regexp.MustCompile(`(?i)(\d+)\s+adultos?`)
	bookingPeopleRe  = regexp.MustCompile(`(?i)n[uú]mero de personas[:\s]*(\d+)`)
	bookingUnitsRe   = regexp.MustCompile(`(?i)\bunidad(?:es)?[:\s]*(\d+)`)
	bookingPINRe     = regexp.MustCompile(`(?i)c[oó]digo pin[:\s]*([0-9]+)`)

	bookingConfLabelRe  = regexp.MustCompile(`(?i)n[uú]mero de confirmaci[oó]n[:.\s]*([0-9][0-9.\-\s]{6,})`)
	bookingConfGroupsRe = regexp.MustCompile(`\b\d{3,6}(?:\.\d{3,6}){1,4}\b`)
	bookingConfBareRe   = regexp.MustCompile(`\b\d{9,12}\b`)

	bookingRoomTypeRe = regexp.MustCompile(`^(APARTAMENTO|HABITACION|ESTUDIO|CASA|VILLA|DUPLEX)\b`)

	// Table layout: "31 8 1 unidades" (check-in day, check-out day, unit count).
	// Matched against accent-stripped uppercase lines.
	bookingTableDaysRe = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})\s+(?:(\d{1,2})\s+)?(?:UNIDAD(?:ES)?|NOCHES?)\b`)

	bookingDateLineRe = regexp.MustCompile(`(?i)^\d{1,2}\s+(?:de\s+)?\p{L}+|^\d{1,2}[/.]\d{1,2}`)
)

// ParseBooking extracts a reservation from the reconstructed text of a
// Booking.com confirmation PDF. Missing fields are left absent, never errors.
// now is injected so year resolution is deterministic under test.
func ParseBooking(text string, now time.Time) dto.ParsedReservation {
	lines := SplitLines(text)
	parsed := dto.ParsedReservation{Provider: dto.ProviderBooking}

	parsed.Hotel.Name = bookingTitle(lines)
	parsed.Hotel.Address = bookingAddress(lines)
	parsed.Hotel.Phone = firstGroup(bookingPhoneRe, text)
	parsed.Hotel.NumberOfGuests = bookingGuests(lines, text)
	parsed.Hotel.RoomTypeRaw = bookingRoomType(lines)
	parsed.ConfirmationNumber = bookingConfirmation(text)

	if pin := firstGroup(bookingPINRe, text); pin != "" {
		parsed.NotesAppend = "PIN: " + pin
	}
	if units := firstGroup(bookingUnitsRe, text); units != "" {
		if n, err := strconv.Atoi(units); err == nil {
			parsed.Hotel.NumberOfRooms = intPtr(n)
		}
	}

	bookingDates(lines, text, now, &parsed)

	return parsed
}

// bookingTitle takes the first contiguous block of lines before a known
// section header as the property name.
func bookingTitle(lines []string) string {
	var block []string
	for _, line := range lines {
		if line == "" {
			if len(block) > 0 {
				break
			}
			continue
		}
		if bookingStopRe.MatchString(normLine(line)) {
			break
		}
		block = append(block, line)
		if len(block) == 3 {
			break
		}
	}

	title := normalizeSpace(strings.Join(block, " "))
	if len(title) >= 6 && hasLetter(title) {
		return title
	}

	// Fallback: first line that is not a boilerplate label and looks like a name.
	for _, line := range lines {
		if len(line) < 6 || !hasLetter(line) {
			continue
		}
		if bookingLabelRe.MatchString(normLine(line)) {
			continue
		}
		return line
	}
	return ""
}

// bookingAddress joins the labeled line with up to 3 continuation lines,
// stopping at the next label or a date-like line.
func bookingAddress(lines []string) string {
	for i, line := range lines {
		m := bookingAddressRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := []string{strings.TrimSpace(m[1])}
		for j := i + 1; j <= i+3 && j < len(lines); j++ {
			next := lines[j]
			if next == "" || bookingLabelRe.MatchString(normLine(next)) || bookingDateLineRe.MatchString(next) {
				break
			}
			parts = append(parts, next)
		}
		addr := normalizeSpace(strings.Join(parts, " "))
		if runes := []rune(addr); len(runes) > maxAddressLen {
			addr = string(runes[:maxAddressLen])
		}
		return addr
	}
	return ""
}

// bookingGuests prefers the "TU GRUPO" block, then the generic people label.
func bookingGuests(lines []string, text string) *int {
	for i, line := range lines {
		if !strings.Contains(normLine(line), "TU GRUPO") {
			continue
		}
		window := strings.Join(lines[i:min(i+4, len(lines))], " ")
		if adults := firstGroup(bookingAdultsRe, window); adults != "" {
			if n, err := strconv.Atoi(adults); err == nil {
				return intPtr(n)
			}
		}
	}
	if people := firstGroup(bookingPeopleRe, text); people != "" {
		if n, err := strconv.Atoi(people); err == nil {
			return intPtr(n)
		}
	}
	return nil
}

func bookingRoomType(lines []string) string {
	for _, line := range lines {
		if bookingRoomTypeRe.MatchString(normLine(line)) {
			return line
		}
	}
	return ""
}

// bookingConfirmation tries the explicit label, then dotted digit groups,
// then a bare 9-12 digit run. Punctuation is preserved.
func bookingConfirmation(text string) string {
	if m := firstGroup(bookingConfLabelRe, text); m != "" {
		m = strings.TrimSpace(m)
		if len(m) >= 7 {
			return m
		}
	}
	if m := bookingConfGroupsRe.FindString(text); m != "" {
		return m
	}
	return bookingConfBareRe.FindString(text)
}

// bookingDates runs the labeled-block strategy first; the table layout only
// fires when the labels produced nothing, and never overrides them.
func bookingDates(lines []string, text string, now time.Time, parsed *dto.ParsedReservation) {
	baseYear := DetectBaseYear(text, now)

	inDay, inMonth, inWindow, inOK := bookingLabeledEdge(lines, "ENTRADA")
	outDay, outMonth, outWindow, outOK := bookingLabeledEdge(lines, "SALIDA")

	if inOK {
		if start, ok := ResolveDate(inDay, inMonth, baseYear, now); ok {
			parsed.Hotel.CheckInTime = inWindow[0]
			parsed.StartDateTime = FormatDateTime(start, inWindow[0])
			if outOK {
				end := time.Date(start.Year(), time.Month(outMonth), outDay, 0, 0, 0, 0, time.Local)
				if end.Day() == outDay {
					end = FixCheckoutYear(start, end)
					parsed.Hotel.CheckOutTime = outWindow[1]
					parsed.EndDateTime = FormatDateTime(end, outWindow[1])
				}
			}
		}
		return
	}
	if outOK {
		// Departure alone is still worth surfacing in the preview.
		if end, ok := ResolveDate(outDay, outMonth, baseYear, now); ok {
			parsed.Hotel.CheckOutTime = outWindow[1]
			parsed.EndDateTime = FormatDateTime(end, outWindow[1])
		}
		return
	}

	tableLayoutDates(lines, bookingTableDaysRe, baseYear, now, parsed)
}

// bookingLabeledEdge collects the day number, month name and time window that
// follow an ENTRADA/SALIDA header, possibly spread across several lines.
func bookingLabeledEdge(lines []string, label string) (day, month int, window [2]string, ok bool) {
	for i, line := range lines {
		norm := normLine(line)
		if !strings.HasPrefix(norm, label) {
			continue
		}
		parts := []string{strings.TrimSpace(line[len(label):])}
		for j := i + 1; j <= i+6 && j < len(lines); j++ {
			next := normLine(lines[j])
			if strings.HasPrefix(next, "ENTRADA") || strings.HasPrefix(next, "SALIDA") {
				break
			}
			parts = append(parts, lines[j])
		}
		snippet := strings.Join(parts, " ")

		d, dOK := findDayOfMonth(snippet)
		m, mOK := findMonth(snippet)
		ws, we, wOK := findClockWindow(snippet)
		if dOK && mOK && wOK {
			return d, m, [2]string{ws, we}, true
		}
	}
	return 0, 0, [2]string{}, false
}
