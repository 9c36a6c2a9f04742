package utils

import (
	"regexp"
	"strconv"
	"time"

	"github.com/stayparse/reservation-import/dto"
)

// tableLayoutDates handles the tabular check-in/check-out layout some
// confirmations extract to: a "day day [count] units" line, a later line
// holding both month names, and a later line holding both time windows. The
// first window's start is the check-in time, the second window's end the
// check-out time. daysRe decides which unit/night words anchor the row.
func tableLayoutDates(lines []string, daysRe *regexp.Regexp, baseYear int, now time.Time, parsed *dto.ParsedReservation) {
	for i, line := range lines {
		m := daysRe.FindStringSubmatch(normLine(line))
		if m == nil {
			continue
		}
		day1, _ := strconv.Atoi(m[1])
		day2, _ := strconv.Atoi(m[2])
		if day1 < 1 || day1 > 31 || day2 < 1 || day2 > 31 {
			continue
		}

		var months []int
		var windows [][2]string
		for j := i + 1; j <= i+4 && j < len(lines); j++ {
			if len(months) < 2 {
				if found := findMonths(lines[j]); len(found) >= 2 {
					months = found
					continue
				}
			}
			if len(windows) < 2 {
				if found := findClockWindows(lines[j]); len(found) >= 2 {
					windows = found
				}
			}
		}
		if len(months) < 2 || len(windows) < 2 {
			continue
		}

		start, ok := ResolveDate(day1, months[0], baseYear, now)
		if !ok {
			return
		}
		end := time.Date(start.Year(), time.Month(months[1]), day2, 0, 0, 0, 0, time.Local)
		if end.Day() != day2 {
			return
		}
		end = FixCheckoutYear(start, end)

		parsed.Hotel.CheckInTime = windows[0][0]
		parsed.Hotel.CheckOutTime = windows[1][1]
		parsed.StartDateTime = FormatDateTime(start, windows[0][0])
		parsed.EndDateTime = FormatDateTime(end, windows[1][1])

		if parsed.Hotel.NumberOfRooms == nil && len(m) > 3 && m[3] != "" {
			if n, err := strconv.Atoi(m[3]); err == nil {
				parsed.Hotel.NumberOfRooms = intPtr(n)
			}
		}
		return
	}
}
