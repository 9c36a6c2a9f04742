package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// bumpWindowDays is how far in the past a resolved date may sit before the
// year is considered stale and bumped forward. Reservation PDFs often print
// the year only once, next to a different date than the one being resolved.
const bumpWindowDays = 330

var (
	spanishMonths = []string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	spanishMonthAbbr = []string{"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sep", "oct", "nov", "dic"}
	italianMonths = []string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
		"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}
	italianMonthAbbr = []string{"gen", "feb", "mar", "apr", "mag", "giu",
		"lug", "ago", "set", "ott", "nov", "dic"}
	englishMonths = []string{"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december"}
	englishMonthAbbr = []string{"jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec"}
)

var yearTokenRe = regexp.MustCompile(`\b(20\d{2})\b`)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining marks so "ENERO", "enero" and "éné"-style
// OCR artifacts compare equal.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// ResolveMonth maps a month token in Spanish, Italian or English (full name
// or abbreviation, accented or not) to its month number. Resolution order is
// Spanish, Italian, English; full names before abbreviations within each.
func ResolveMonth(token string) (int, bool) {
	cleaned := strings.ToLower(StripAccents(strings.TrimSpace(token)))
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" {
		return 0, false
	}

	tables := [][]string{
		spanishMonths, spanishMonthAbbr,
		italianMonths, italianMonthAbbr,
		englishMonths, englishMonthAbbr,
	}
	for _, table := range tables {
		for i, name := range table {
			if cleaned == name {
				return i + 1, true
			}
		}
	}

	// "sept", "giugn": a truncated full name still identifies the month.
	if len(cleaned) >= 4 {
		fullTables := [][]string{spanishMonths, italianMonths, englishMonths}
		for _, table := range fullTables {
			for i, name := range table {
				if strings.HasPrefix(name, cleaned) {
					return i + 1, true
				}
			}
		}
	}

	return 0, false
}

// DetectBaseYear scans the whole document for 20xx tokens and returns the
// largest one, falling back to the current calendar year. A larger unrelated
// year (e.g. a copyright line) can win; that is an accepted approximation.
func DetectBaseYear(text string, now time.Time) int {
	best := 0
	for _, m := range yearTokenRe.FindAllStringSubmatch(text, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && y > best {
			best = y
		}
	}
	if best == 0 {
		return now.Year()
	}
	return best
}

// ResolveDate builds a date from a (day, month, base year) triple, bumping
// the year forward while the result sits more than bumpWindowDays before now.
func ResolveDate(day, month, baseYear int, now time.Time) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(baseYear, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Day() != day {
		// Day overflowed the month (e.g. 31 February).
		return time.Time{}, false
	}
	cutoff := now.AddDate(0, 0, -bumpWindowDays)
	for date.Before(cutoff) {
		date = date.AddDate(1, 0, 0)
	}
	return date, true
}

// FixCheckoutYear enforces end >= start: when the end date resolved against a
// baseline year lands before the start date (date-only comparison), its year
// is advanced by one.
func FixCheckoutYear(start, end time.Time) time.Time {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.Local)
	if endDay.Before(startDay) {
		return end.AddDate(1, 0, 0)
	}
	return end
}

// FormatDateTime combines a date with an "HH:MM" clock string into the
// canonical local date-time form "YYYY-MM-DDTHH:MM". No zone is attached.
func FormatDateTime(date time.Time, clock string) string {
	return date.Format("2006-01-02") + "T" + NormalizeClock(clock)
}

// NormalizeClock pads single-digit hours so string comparison of canonical
// date-times orders correctly ("9:30" -> "09:30").
func NormalizeClock(clock string) string {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return clock
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return clock
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
