// Package wordcount provides the :wc command, which reports paragraph,
// word, grapheme and emoji statistics for the document.
package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/plugin"
	"github.com/fatemehkarimi/theodore/internal/tree"
	"github.com/gogpu/gg/text/emoji"
	"github.com/rivo/uniseg"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount registers the wc command.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "WordCount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown does nothing.
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Count(p.api.Tree()))
	return nil
}

// Stats summarizes a document.
type Stats struct {
	Paragraphs int
	Words      int
	Graphemes  int
	Emoji      int
	// Kinds counts emoji by sequence type (ZWJ, flag, skin tone...).
	Kinds map[emoji.SequenceType]int
}

// Count computes the statistics of t. Emoji count as one grapheme each and
// separate the words around them.
func Count(t tree.Tree) Stats {
	s := Stats{Paragraphs: len(t), Kinds: make(map[emoji.SequenceType]int)}
	for _, para := range t {
		s.Graphemes += para.Len()
		for _, n := range para.Content() {
			switch v := n.(type) {
			case node.Text:
				s.Words += countWords(v.Content)
			case node.Emoji:
				s.Emoji++
				s.Kinds[sequenceType(v.Glyph)]++
			}
		}
	}
	return s
}

func sequenceType(glyph string) emoji.SequenceType {
	seqs := emoji.ParseString(glyph)
	if len(seqs) == 0 {
		return emoji.SequenceSimple
	}
	return seqs[0].Type
}

// countWords counts Unicode word segments that contain a letter or digit.
func countWords(s string) int {
	count := 0
	state := -1
	var word string
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		if strings.IndexFunc(word, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			count++
		}
	}
	return count
}

// String formats the statistics for the status bar.
func (s Stats) String() string {
	msg := fmt.Sprintf("Paragraphs: %d, Words: %d, Graphemes: %d, Emoji: %d",
		s.Paragraphs, s.Words, s.Graphemes, s.Emoji)
	if s.Emoji == 0 {
		return msg
	}
	var kinds []string
	for k := emoji.SequenceSimple; k <= emoji.SequencePresentation; k++ {
		if c := s.Kinds[k]; c > 0 {
			kinds = append(kinds, fmt.Sprintf("%s %d", k, c))
		}
	}
	return msg + " (" + strings.Join(kinds, ", ") + ")"
}
