package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	clockWindowRe = regexp.MustCompile(`(?i)de\s+(\d{1,2}:\d{2})\s+a\s+(\d{1,2}:\d{2})`)
	clockRe       = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
	dayTokenRe    = regexp.MustCompile(`\b(\d{1,2})\b`)
	wordRe        = regexp.MustCompile(`[\p{L}]+`)
)

// SplitLines splits reconstructed text into trimmed lines, keeping blank
// lines so block boundaries (page breaks, paragraph gaps) stay visible.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// normLine uppercases and strips accents so label matching survives both
// locale spelling and extraction artifacts.
func normLine(s string) string {
	return strings.ToUpper(StripAccents(s))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func intPtr(n int) *int {
	return &n
}

// firstGroup returns the first capture group of the first match, trimmed.
func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// findClockWindow extracts a "de HH:MM a HH:MM" window.
func findClockWindow(s string) (start, end string, ok bool) {
	if m := clockWindowRe.FindStringSubmatch(s); len(m) > 2 {
		return NormalizeClock(m[1]), NormalizeClock(m[2]), true
	}
	return "", "", false
}

// findClockWindows extracts all "de HH:MM a HH:MM" windows in order.
func findClockWindows(s string) [][2]string {
	var windows [][2]string
	for _, m := range clockWindowRe.FindAllStringSubmatch(s, -1) {
		windows = append(windows, [2]string{NormalizeClock(m[1]), NormalizeClock(m[2])})
	}
	return windows
}

// findDayOfMonth returns the first standalone 1-31 number in s.
func findDayOfMonth(s string) (int, bool) {
	for _, m := range dayTokenRe.FindAllStringSubmatch(s, -1) {
		if d, err := strconv.Atoi(m[1]); err == nil && d >= 1 && d <= 31 {
			return d, true
		}
	}
	return 0, false
}

// findMonth returns the first word in s that resolves to a month.
func findMonth(s string) (int, bool) {
	for _, w := range wordRe.FindAllString(s, -1) {
		if m, ok := ResolveMonth(w); ok {
			return m, true
		}
	}
	return 0, false
}

// findMonths returns every word in s that resolves to a month, in order.
func findMonths(s string) []int {
	var months []int
	for _, w := range wordRe.FindAllString(s, -1) {
		if m, ok := ResolveMonth(w); ok {
			months = append(months, m)
		}
	}
	return months
}

// hasLetter reports whether s contains at least one letter.
func hasLetter(s string) bool {
	return wordRe.MatchString(s)
}
