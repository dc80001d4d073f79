package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/forPelevin/ytsnip/internal/domain/captions"
)

const (
	// DefaultGapThreshold is the silence between two words above which a gap
	// marker is put into the corpus.
	DefaultGapThreshold = 10 * time.Second
	// DefaultGapMarker never matches `.`, letters or `\S`, so ordinary patterns
	// cannot run across a long silence and every \S+ match is a real word.
	DefaultGapMarker = "\n"
)

type Options struct {
	GapThreshold time.Duration
	GapMarker    string
}

// Mark is one entry of the offset index: the corpus offset where word Ordinal
// starts, and the time it is spoken. The last mark is a sentinel past the end of
// the corpus carrying the final boundary time and the word count.
type Mark struct {
	Offset  int
	Time    float64
	Ordinal int
}

type Timeline struct {
	Corpus string
	Marks  []Mark
	Words  []string
}

// Len is the number of words.
func (t Timeline) Len() int { return len(t.Words) }

// Build flattens a parsed caption document into a lowercase search corpus and
// its offset index.
func Build(doc captions.Document, opts Options) (Timeline, error) {
	if opts.GapThreshold <= 0 {
		opts.GapThreshold = DefaultGapThreshold
	}
	if opts.GapMarker == "" {
		opts.GapMarker = DefaultGapMarker
	}
	if doc.Empty() {
		return Timeline{}, nil
	}

	final, err := captions.ParseTimestamp(doc.Final)
	if err != nil {
		return Timeline{}, fmt.Errorf("final time: %w", err)
	}

	var b strings.Builder
	marks := make([]Mark, 0, len(doc.Cues)+1)
	words := make([]string, 0, len(doc.Cues))
	prev := 0.0
	for i, c := range doc.Cues {
		at, err := captions.ParseTimestamp(c.Time)
		if err != nil {
			return Timeline{}, fmt.Errorf("cue %d: %w", i, err)
		}
		if i > 0 && millis(at-prev) > opts.GapThreshold {
			b.WriteString(opts.GapMarker)
			b.WriteByte(' ')
		}
		word := token(c.Word)
		marks = append(marks, Mark{Offset: b.Len(), Time: at, Ordinal: i})
		words = append(words, word)
		b.WriteString(word)
		b.WriteByte(' ')
		prev = at
	}
	marks = append(marks, Mark{Offset: b.Len(), Time: final, Ordinal: len(words)})

	return Timeline{
		Corpus: strings.TrimSuffix(b.String(), " "),
		Marks:  marks,
		Words:  words,
	}, nil
}

// WordJoiner replaces whitespace inside a single cue word, so each cue stays one
// \S+ token of the corpus.
const WordJoiner = "_"

func token(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), WordJoiner)
}

func millis(sec float64) time.Duration {
	return time.Duration(math.Round(sec*1000)) * time.Millisecond
}

// TimeAt returns the start time of word ordinal i; ordinal Len() is the final
// boundary.
func (t Timeline) TimeAt(i int) float64 {
	return t.Marks[i].Time
}

// Span returns the time range covered by words [start, end).
func (t Timeline) Span(start, end int) (float64, float64) {
	return t.TimeAt(start), t.TimeAt(end)
}
