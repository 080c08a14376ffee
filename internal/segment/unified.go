package segment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCode = errors.New("invalid unified emoji code")

// Unified returns the code-point name of an emoji, e.g. "1f44d-1f3fd".
// Every code point is kept, variation selectors included, so Native
// restores the exact glyph.
func Unified(glyph string) string {
	parts := make([]string, 0, 4)
	for _, r := range glyph {
		parts = append(parts, strconv.FormatInt(int64(r), 16))
	}
	return strings.Join(parts, "-")
}

// Native converts a unified code back into its glyph.
func Native(code string) (string, error) {
	code = strings.TrimSpace(strings.Trim(code, ":"))
	if code == "" {
		return "", ErrInvalidCode
	}
	var b strings.Builder
	for _, part := range strings.Split(code, "-") {
		part = strings.TrimPrefix(strings.ToLower(part), "u+")
		v, err := strconv.ParseUint(part, 16, 32)
		if err != nil || v > 0x10FFFF {
			return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
		b.WriteRune(rune(v))
	}
	return b.String(), nil
}
