package segment

import (
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// UTF16ToGrapheme converts a UTF-16 code-unit offset into s to a grapheme
// offset. An offset that falls inside a cluster snaps to the cluster start.
func UTF16ToGrapheme(s string, units int) int {
	if units <= 0 {
		return 0
	}
	state := -1
	rest := s
	seen, count := 0, 0
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		seen += utf16Len(cluster)
		if seen > units {
			return count
		}
		count++
	}
	return count
}

// GraphemeToUTF16 converts a grapheme offset into s to UTF-16 code units.
func GraphemeToUTF16(s string, graphemes int) int {
	if graphemes <= 0 {
		return 0
	}
	state := -1
	rest := s
	units := 0
	var cluster string
	for i := 0; i < graphemes && len(rest) > 0; i++ {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		units += utf16Len(cluster)
	}
	return units
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
