package render

import (
	"strings"
	"unicode/utf8"
)

// wrap greedily fills words up to width columns per line. Words longer than
// the width occupy a line of their own rather than being broken, so the
// output is stable no matter how pathological the input.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width < 1 {
		width = 1
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wlen := utf8.RuneCountInString(w)
		switch {
		case curLen == 0:
			cur.WriteString(w)
			curLen = wlen
		case curLen+1+wlen <= width:
			cur.WriteByte(' ')
			cur.WriteString(w)
			curLen += 1 + wlen
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			curLen = wlen
		}
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
