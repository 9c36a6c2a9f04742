package pdflayout

import (
	"math"
	"sort"
	"strings"
)

// yBucketSize quantizes baseline coordinates so fragments with sub-pixel
// jitter still land on the same visual line.
const yBucketSize = 0.5

// Fragment is one positioned text run extracted from a PDF page. Coordinates
// use the PDF convention: origin bottom-left, larger Y is higher on the page.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// ReconstructPage turns the flat fragment list of one page into ordered
// logical lines, top to bottom, left to right within a line.
func ReconstructPage(fragments []Fragment) []string {
	if len(fragments) == 0 {
		return nil
	}

	buckets := make(map[int][]Fragment)
	for _, f := range fragments {
		key := int(math.Floor(f.Y / yBucketSize))
		buckets[key] = append(buckets[key], f)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Higher Y = higher on the page, so descending order reads top to bottom.
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	var lines []string
	for _, k := range keys {
		row := buckets[k]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})

		parts := make([]string, 0, len(row))
		for _, f := range row {
			parts = append(parts, f.Text)
		}
		line := normalizeSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// ReconstructDocument concatenates per-page reconstructions with a blank
// separator line between pages.
func ReconstructDocument(pages [][]Fragment) []string {
	var lines []string
	for i, page := range pages {
		pageLines := ReconstructPage(page)
		if len(pageLines) == 0 {
			continue
		}
		if i > 0 && len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, pageLines...)
	}
	return lines
}

// JoinLines is the newline-joined serialization of a reconstructed document.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// normalizeSpace collapses runs of whitespace into single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
