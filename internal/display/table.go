package display

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Alignment represents column alignment options
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const minColumnWidth = 8

// TableFormatter renders plain ASCII tables sized to their content. When
// a table overflows the terminal, the widest column is shrunk and its
// cells truncated.
type TableFormatter struct {
	headers     []string
	rows        [][]string
	alignments  map[int]Alignment
	colorSystem ColorSystem
	maxWidth    int
}

// NewTableFormatter creates a table formatter. A nil color system
// renders plain text.
func NewTableFormatter(colorSystem ColorSystem) *TableFormatter {
	return &TableFormatter{
		alignments:  make(map[int]Alignment),
		colorSystem: colorSystem,
		maxWidth:    terminalWidth(),
	}
}

// SetHeaders sets the header row.
func (tf *TableFormatter) SetHeaders(headers []string) {
	tf.headers = headers
}

// AddRow appends one data row.
func (tf *TableFormatter) AddRow(row []string) {
	tf.rows = append(tf.rows, row)
}

// SetColumnAlignment sets the alignment for one column.
func (tf *TableFormatter) SetColumnAlignment(column int, alignment Alignment) {
	tf.alignments[column] = alignment
}

// SetMaxWidth overrides the detected terminal width.
func (tf *TableFormatter) SetMaxWidth(width int) {
	tf.maxWidth = width
}

// Render produces the table text, trailing newline included.
func (tf *TableFormatter) Render() string {
	widths := tf.columnWidths()

	var b strings.Builder
	if len(tf.headers) > 0 {
		b.WriteString(tf.renderRow(tf.headers, widths, true))
		b.WriteString(tf.renderSeparator(widths))
	}
	for _, row := range tf.rows {
		b.WriteString(tf.renderRow(row, widths, false))
	}
	return b.String()
}

func (tf *TableFormatter) columnWidths() []int {
	columns := len(tf.headers)
	for _, row := range tf.rows {
		if len(row) > columns {
			columns = len(row)
		}
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(tf.headers)
	for _, row := range tf.rows {
		measure(row)
	}

	if tf.maxWidth > 0 {
		total := totalWidth(widths)
		for total > tf.maxWidth {
			widest := 0
			for i := range widths {
				if widths[i] > widths[widest] {
					widest = i
				}
			}
			if widths[widest] <= minColumnWidth {
				break
			}
			widths[widest]--
			total--
		}
	}
	return widths
}

// totalWidth includes the two-space gap between columns.
func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += 2 * (len(widths) - 1)
	}
	return total
}

func (tf *TableFormatter) renderRow(row []string, widths []int, isHeader bool) string {
	cells := make([]string, len(widths))
	for i := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = tf.pad(cell, widths[i], tf.alignments[i], isHeader)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ") + "\n"
}

func (tf *TableFormatter) renderSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ") + "\n"
}

func (tf *TableFormatter) pad(cell string, width int, alignment Alignment, isHeader bool) string {
	cell = truncateCell(cell, width)
	padding := width - utf8.RuneCountInString(cell)
	if padding < 0 {
		padding = 0
	}

	// Colorize after truncation so escape sequences are never cut.
	if isHeader && tf.colorSystem != nil && tf.colorSystem.IsColorSupported() {
		cell = tf.colorSystem.Colorize(cell, tf.colorSystem.Theme().Primary)
	}

	if alignment == AlignRight {
		return strings.Repeat(" ", padding) + cell
	}
	return cell + strings.Repeat(" ", padding)
}

func truncateCell(cell string, width int) string {
	if utf8.RuneCountInString(cell) <= width {
		return cell
	}
	runes := []rune(cell)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// terminalWidth returns the current terminal width
func terminalWidth() int {
	width, _, err := term.GetSize(0)
	if err != nil {
		return 80
	}
	return width
}
