package pdflayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPageOrder(t *testing.T) {
	fragments := []Fragment{
		{Text: "B", X: 50, Y: 100},
		{Text: "A", X: 10, Y: 100},
		{Text: "C", X: 0, Y: 80},
	}

	lines := ReconstructPage(fragments)

	assert.Equal(t, []string{"A B", "C"}, lines)
}

func TestReconstructPageJitter(t *testing.T) {
	// Baselines 100.1 and 100.3 fall into the same 0.5 bucket.
	fragments := []Fragment{
		{Text: "Hotel", X: 10, Y: 100.1},
		{Text: "Miramar", X: 60, Y: 100.3},
	}

	lines := ReconstructPage(fragments)

	assert.Equal(t, []string{"Hotel Miramar"}, lines)
}

func TestReconstructPageDropsEmpty(t *testing.T) {
	fragments := []Fragment{
		{Text: "  ", X: 0, Y: 50},
		{Text: "Check-in", X: 0, Y: 40},
		{Text: "   15:00  ", X: 80, Y: 40},
	}

	lines := ReconstructPage(fragments)

	assert.Equal(t, []string{"Check-in 15:00"}, lines)
}

func TestReconstructDocumentPageSeparator(t *testing.T) {
	pages := [][]Fragment{
		{{Text: "Page one", X: 0, Y: 700}},
		{{Text: "Page two", X: 0, Y: 700}},
	}

	lines := ReconstructDocument(pages)

	assert.Equal(t, []string{"Page one", "", "Page two"}, lines)
	assert.Equal(t, "Page one\n\nPage two", JoinLines(lines))
}

func TestReconstructDocumentSkipsEmptyPages(t *testing.T) {
	pages := [][]Fragment{
		nil,
		{{Text: "Only page with text", X: 0, Y: 700}},
	}

	lines := ReconstructDocument(pages)

	assert.Equal(t, []string{"Only page with text"}, lines)
}
