package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const columnGap = "  "

// Table prints rows under a header, columns left-aligned. Widths are
// measured on rendered text so styled cells line up too.
type Table struct {
	header []string
	rows   [][]string
}

func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// AddRow appends a row; missing trailing cells are blank and extra ones are
// dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.header))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	w := make([]int, len(t.header))
	for i, h := range t.header {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

func (t *Table) String() string {
	if len(t.header) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	header := make([]string, len(t.header))
	rule := make([]string, len(t.header))
	for i, h := range t.header {
		header[i] = Header(h)
		rule[i] = Dim(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, header, widths)
	writeRow(&b, rule, widths)
	for _, row := range t.rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

// writeRow pads every cell but the last, so lines carry no trailing blanks
// beyond an empty final cell.
func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(cells) - 1
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(cell)
		if i < last {
			if pad := widths[i] - lipgloss.Width(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
	}
	b.WriteByte('\n')
}

// FormatKeyValue renders "key: value" with the key dimmed.
func FormatKeyValue(key, value string) string {
	return Dim(key) + ": " + value
}

// FormatCount renders "1 table" or "1,234 tables".
func FormatCount(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return humanize.Comma(int64(n)) + " " + noun
}
