package segment

import "golang.org/x/text/unicode/bidi"

// Direction is the base writing direction of a paragraph.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// DirectionOf returns the direction of the first strong character in s.
// ok is false when s holds no strong character.
func DirectionOf(s string) (d Direction, ok bool) {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return RTL, true
		case bidi.L:
			return LTR, true
		}
	}
	return LTR, false
}
