// Package segment splits text into grapheme clusters and classifies emoji.
//
// All offsets handled by this package are grapheme-cluster offsets unless a
// function name says otherwise. Multi-code-point emoji (skin tones, ZWJ
// families, flags, keycaps) always count as a single cluster.
package segment

import (
	"github.com/gogpu/gg/text/emoji"
	"github.com/rivo/uniseg"
)

// SegmentText splits s on grapheme-cluster boundaries.
func SegmentText(s string) []string {
	if s == "" {
		return nil
	}
	clusters := make([]string, 0, len(s))
	state := -1
	rest := s
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ByteOffset returns the byte offset where grapheme n starts. Offsets past
// the end clamp to len(s).
func ByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	state := -1
	rest := s
	pos := 0
	var cluster string
	for i := 0; i < n && len(rest) > 0; i++ {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += len(cluster)
	}
	return pos
}

// SliceGraphemes returns the graphemes [from, to) of s.
func SliceGraphemes(s string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to < from {
		return ""
	}
	start := ByteOffset(s, from)
	end := ByteOffset(s, to)
	return s[start:end]
}

// SplitAt splits s before grapheme offset.
func SplitAt(s string, offset int) (head, tail string) {
	b := ByteOffset(s, offset)
	return s[:b], s[b:]
}

// IsEmoji reports whether cluster begins with an emoji sequence. A
// text-presentation selector (U+FE0E) keeps the cluster as text, and so do
// keycaps, whose base is an ordinary digit or symbol.
func IsEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	runes := []rune(cluster)
	seqs := emoji.Parse(runes)
	if len(seqs) == 0 || len(seqs[0].Codepoints) == 0 {
		return false
	}
	if seqs[0].Type == emoji.SequenceKeycap {
		return false
	}
	return seqs[0].Codepoints[0] == runes[0]
}

// FirstEmoji returns the first emoji cluster found in s.
func FirstEmoji(s string) (string, bool) {
	for _, cluster := range SegmentText(s) {
		if IsEmoji(cluster) {
			return cluster, true
		}
	}
	return "", false
}

// IsNewline reports whether cluster is a line break (LF, CR or CRLF).
func IsNewline(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n" || cluster == "\r"
}
