// Package node defines the addressable units of document content.
package node

import "github.com/rivo/uniseg"

// Kind identifies the variant of a Node.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindEmoji
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmoji:
		return "emoji"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Node is one of Text, Emoji or Paragraph. The set is closed: only this
// package can add variants.
type Node interface {
	// Index is the node identity, unique for the lifetime of an editor.
	Index() int
	Kind() Kind
	// Len is the editing length: graphemes for Text, 1 for Emoji, 0 for Paragraph.
	Len() int

	sealed()
}

// Text holds a run of plain text.
type Text struct {
	ID      int
	Content string
}

func (t Text) Index() int { return t.ID }
func (t Text) Kind() Kind { return KindText }
func (t Text) Len() int   { return uniseg.GraphemeClusterCount(t.Content) }
func (Text) sealed()      {}

// WithContent returns a copy of t carrying content.
func (t Text) WithContent(content string) Text {
	t.Content = content
	return t
}

// Emoji holds a single emoji grapheme cluster. It is immutable once created.
type Emoji struct {
	ID    int
	Glyph string
}

func (e Emoji) Index() int { return e.ID }
func (e Emoji) Kind() Kind { return KindEmoji }
func (e Emoji) Len() int   { return 1 }
func (Emoji) sealed()      {}

// Paragraph anchors a paragraph. It is always the first node of its paragraph.
type Paragraph struct {
	ID int
}

func (p Paragraph) Index() int { return p.ID }
func (p Paragraph) Kind() Kind { return KindParagraph }
func (p Paragraph) Len() int   { return 0 }
func (Paragraph) sealed()      {}

// IsText reports whether n is a Text node.
func IsText(n Node) bool {
	_, ok := n.(Text)
	return ok
}

// IsEmoji reports whether n is an Emoji node.
func IsEmoji(n Node) bool {
	_, ok := n.(Emoji)
	return ok
}

// IsParagraph reports whether n is a Paragraph node.
func IsParagraph(n Node) bool {
	_, ok := n.(Paragraph)
	return ok
}

// PlainText returns the text a node contributes to the document.
func PlainText(n Node) string {
	switch v := n.(type) {
	case Text:
		return v.Content
	case Emoji:
		return v.Glyph
	default:
		return ""
	}
}
