package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stayparse/reservation-import/dto"
)

// Airbnb itineraries label every field, but line breaks fall anywhere, so
// each extraction tries a multi-line window before the single-line form.
var (
	airbnbHeaderRe = regexp.MustCompile(
		`^(LLEGADA\b|ARRIVAL\b|SALIDA\b|DEPARTURE\b|¿?QUIEN VIENE|WHO'S COMING|CODIGO DE CONFIRMACION\b|CONFIRMATION CODE\b|DIRECCION\b|ADDRESS\b|ANFITRION\b|HOST\b)`)

	airbnbConfLabelRe = regexp.MustCompile(`(?i)(?:confirmation code|c[oó]digo de confirmaci[oó]n)[:\s]*`)
	// Codes are uppercase alphanumeric; keeping the token case-sensitive
	// stops prose after the label from matching.
	airbnbConfTokenRe = regexp.MustCompile(`\b([A-Z0-9]{6,})\b`)
	airbnbGuestsRe    = regexp.MustCompile(`(?i)(\d+)\s+(?:travell?ers?|viajeros?)`)
	airbnbAddressRe   = regexp.MustCompile(`(?i)^(?:address|direcci[oó]n)\b[:\s]*(.*)`)
	airbnbHostRe      = regexp.MustCompile(`(?i)\b(?:host|anfitri[oó]n)\b[:\s]+(.+)`)

	// "12:00 mar, 23 mar." — a clock plus an optional weekday and a
	// day-of-month with abbreviated month.
	airbnbEdgeRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2})\s+(?:\p{L}+,\s*)?(\d{1,2})\s+(\p{L}+)\.?`)
)

// ParseAirbnb extracts a reservation from the reconstructed text of an
// Airbnb itinerary PDF. Missing fields stay absent, never errors.
func ParseAirbnb(text string, now time.Time) dto.ParsedReservation {
	lines := SplitLines(text)
	parsed := dto.ParsedReservation{Provider: dto.ProviderAirbnb}

	parsed.Hotel.Name = airbnbTitle(lines)
	parsed.ConfirmationNumber = airbnbConfirmation(lines)
	parsed.Hotel.Address = airbnbAddress(lines)

	if guests := firstGroup(airbnbGuestsRe, text); guests != "" {
		if n, err := strconv.Atoi(guests); err == nil {
			parsed.Hotel.NumberOfGuests = intPtr(n)
		}
	}
	if host := firstGroup(airbnbHostRe, text); host != "" {
		parsed.NotesAppend = "Host: " + host
	}

	airbnbDates(lines, text, now, &parsed)

	return parsed
}

// airbnbTitle takes the listing name block before the first known header.
func airbnbTitle(lines []string) string {
	var block []string
	for _, line := range lines {
		if line == "" {
			if len(block) > 0 {
				break
			}
			continue
		}
		if airbnbHeaderRe.MatchString(normLine(line)) {
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
	return ""
}

// airbnbConfirmation finds the code on the label line or the one after it.
func airbnbConfirmation(lines []string) string {
	for i, line := range lines {
		loc := airbnbConfLabelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if code := firstGroup(airbnbConfTokenRe, line[loc[1]:]); code != "" {
			return code
		}
		for j := i + 1; j <= i+2 && j < len(lines); j++ {
			if code := firstGroup(airbnbConfTokenRe, lines[j]); code != "" {
				return code
			}
		}
	}
	return ""
}

func airbnbAddress(lines []string) string {
	for i, line := range lines {
		m := airbnbAddressRe.FindStringSubmatch(line)
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

// airbnbDates resolves the Arrival/Departure edges. Arrival anchors the year
// via the document base year; departure starts from the arrival year and
// gets the checkout correction.
func airbnbDates(lines []string, text string, now time.Time, parsed *dto.ParsedReservation) {
	baseYear := DetectBaseYear(text, now)

	inClock, inDay, inMonth, inOK := airbnbEdge(lines, []string{"LLEGADA", "ARRIVAL"})
	outClock, outDay, outMonth, outOK := airbnbEdge(lines, []string{"SALIDA", "DEPARTURE"})

	if !inOK {
		if outOK {
			if end, ok := ResolveDate(outDay, outMonth, baseYear, now); ok {
				parsed.Hotel.CheckOutTime = outClock
				parsed.EndDateTime = FormatDateTime(end, outClock)
			}
		}
		return
	}

	start, ok := ResolveDate(inDay, inMonth, baseYear, now)
	if !ok {
		return
	}
	parsed.Hotel.CheckInTime = inClock
	parsed.StartDateTime = FormatDateTime(start, inClock)

	if outOK {
		end := time.Date(start.Year(), time.Month(outMonth), outDay, 0, 0, 0, 0, time.Local)
		if end.Day() == outDay {
			end = FixCheckoutYear(start, end)
			parsed.Hotel.CheckOutTime = outClock
			parsed.EndDateTime = FormatDateTime(end, outClock)
		}
	}
}

// airbnbEdge scans for one of the header labels, then matches the clock +
// day + month pattern over the following lines first, then the label line
// itself (the single-line layout).
func airbnbEdge(lines []string, labels []string) (clock string, day, month int, ok bool) {
	for i, line := range lines {
		norm := normLine(line)
		matched := ""
		for _, label := range labels {
			if strings.HasPrefix(norm, label) {
				matched = label
				break
			}
		}
		if matched == "" {
			continue
		}

		var windowParts []string
		for j := i + 1; j <= i+3 && j < len(lines); j++ {
			if airbnbHeaderRe.MatchString(normLine(lines[j])) {
				break
			}
			windowParts = append(windowParts, lines[j])
		}
		if c, d, m, found := airbnbEdgeMatch(strings.Join(windowParts, " ")); found {
			return c, d, m, true
		}
		if c, d, m, found := airbnbEdgeMatch(line[len(matched):]); found {
			return c, d, m, true
		}
	}
	return "", 0, 0, false
}

func airbnbEdgeMatch(s string) (clock string, day, month int, ok bool) {
	for _, m := range airbnbEdgeRe.FindAllStringSubmatch(s, -1) {
		d, err := strconv.Atoi(m[2])
		if err != nil || d < 1 || d > 31 {
			continue
		}
		mo, found := ResolveMonth(m[3])
		if !found {
			continue
		}
		return NormalizeClock(m[1]), d, mo, true
	}
	return "", 0, 0, false
}
