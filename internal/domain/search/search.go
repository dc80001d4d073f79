package search

import (
	"regexp"
	"sort"

	"github.com/forPelevin/ytsnip/internal/domain/timeline"
	"github.com/forPelevin/ytsnip/internal/types"
)

var reWord = regexp.MustCompile(`\S+`)

// Span is a raw match over the corpus, [Start, End) in bytes.
type Span struct {
	Start int
	End   int
	Text  string
}

// Spans returns the non-overlapping, non-empty matches of re in corpus, left to right.
func Spans(re *regexp.Regexp, corpus string) []Span {
	var out []Span
	for _, loc := range re.FindAllStringIndex(corpus, -1) {
		if loc[1] == loc[0] {
			continue
		}
		out = append(out, Span{Start: loc[0], End: loc[1], Text: corpus[loc[0]:loc[1]]})
	}
	return out
}

// Resolve widens a span to the smallest enclosing run of words: it starts at the
// last word starting at or before s.Start and ends at the first mark strictly
// after s.End. A span ending on the separator right before a word therefore
// includes that word.
func Resolve(tl timeline.Timeline, s Span) types.Interval {
	marks := tl.Marks
	// first mark with Offset > Start, minus one
	lo := sort.Search(len(marks), func(i int) bool { return marks[i].Offset > s.Start }) - 1
	hi := sort.Search(len(marks), func(i int) bool { return marks[i].Offset > s.End })
	if lo < 0 {
		lo = 0
	}
	if hi >= len(marks) {
		hi = len(marks) - 1
	}
	return types.Interval{
		Start:     marks[lo].Time,
		End:       marks[hi].Time,
		StartWord: marks[lo].Ordinal,
		EndWord:   marks[hi].Ordinal,
		Text:      s.Text,
	}
}

// Find runs re over the timeline corpus and resolves every match.
func Find(re *regexp.Regexp, tl timeline.Timeline) []types.Interval {
	if tl.Len() == 0 {
		return nil
	}
	spans := Spans(re, tl.Corpus)
	out := make([]types.Interval, 0, len(spans))
	for _, s := range spans {
		out = append(out, Resolve(tl, s))
	}
	return out
}

// Words is the per-word index: Find with a catch-all pattern, one interval per word.
func Words(tl timeline.Timeline) []types.Interval {
	return Find(reWord, tl)
}
