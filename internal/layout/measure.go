package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/toasty/internal/model"
)

// Measurer reports the height a message needs when wrapped to width.
type Measurer interface {
	TextHeight(text string, font model.Font, width float64) float64
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, font model.Font, width float64) float64

// TextHeight calls f.
func (f MeasurerFunc) TextHeight(text string, font model.Font, width float64) float64 {
	return f(text, font, width)
}

// CellMeasurer measures text on a grid of fixed-size cells. East Asian wide
// runes take two cells.
type CellMeasurer struct {
	// CellWidth is the width of one column. Zero derives it from the font size.
	CellWidth float64
	// LineHeight is the height of one line. Zero derives it from the font size.
	LineHeight float64
}

// TextHeight implements Measurer.
func (m CellMeasurer) TextHeight(text string, font model.Font, width float64) float64 {
	cw, lh := m.metrics(font)
	cols := int(width / cw)
	return float64(len(Wrap(text, cols))) * lh
}

// Columns returns how many cells fit in width.
func (m CellMeasurer) Columns(font model.Font, width float64) int {
	cw, _ := m.metrics(font)
	return int(width / cw)
}

func (m CellMeasurer) metrics(font model.Font) (float64, float64) {
	size := font.Size
	if size <= 0 {
		size = model.DefaultFontSize
	}
	cw, lh := m.CellWidth, m.LineHeight
	if cw <= 0 {
		cw = size * 0.6
	}
	if lh <= 0 {
		lh = size * 1.25
	}
	return cw, lh
}

// Wrap breaks text into lines no wider than cols cells. Words longer than a
// line are split. Explicit newlines are kept. An empty text yields one empty
// line.
func Wrap(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, cols)...)
	}
	return lines
}

func wrapParagraph(para string, cols int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range words {
		w := runewidth.StringWidth(word)

		if curWidth > 0 && curWidth+1+w <= cols {
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + w
			continue
		}
		if curWidth > 0 {
			flush()
		}

		for w > cols {
			head := runewidth.Truncate(word, cols, "")
			if head == "" {
				// A single rune wider than the line still has to go somewhere.
				r := []rune(word)
				head = string(r[0])
			}
			lines = append(lines, head)
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}
		cur.WriteString(word)
		curWidth = w
	}
	if curWidth > 0 {
		flush()
	}
	return lines
}
