package captions

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/ytsnip/internal/types"
)

var (
	ErrCueMismatch = errors.New("caption timestamps and words are misaligned")
	ErrNoFinalTime = errors.New("caption track has no final boundary timestamp")
)

const timestampExpr = `\d+:\d{2}:\d{2}\.\d{3}`

// Group 1/2: cue header time and the bare word before the first inline tag.
// Group 3/4: inline <time><c> word</c> tag.
var (
	reCue   = regexp.MustCompile(`(` + timestampExpr + `) --> .*\n.*\n([^<\n]+)|<(` + timestampExpr + `)><c> ([^<]+)</c>`)
	reFinal = regexp.MustCompile(`--> (` + timestampExpr + `)`)
)

// DefaultMergeThreshold is how close two consecutive cue timestamps may be
// before the later one is treated as a re-emission of the earlier.
const DefaultMergeThreshold = 11 * time.Millisecond

type Options struct {
	MergeThreshold time.Duration
}

type Document struct {
	Cues  []types.Cue
	Final string
}

// Empty reports whether no words were found.
func (d Document) Empty() bool { return len(d.Cues) == 0 }

// Parse extracts the word cues of an auto-generated WebVTT track in source order.
// A track with no recognizable cues yields an empty Document and no error.
func Parse(raw string, opts Options) (Document, error) {
	if opts.MergeThreshold < 0 {
		opts.MergeThreshold = 0
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var times, words []string
	for pos := 0; pos < len(raw); {
		loc := reCue.FindStringSubmatchIndex(raw[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		var ts, word string
		if loc[2] >= 0 {
			// header form only counts when the word runs right into a tag
			if end >= len(raw) || raw[end] != '<' {
				pos = start + 1
				continue
			}
			ts, word = raw[pos+loc[2]:pos+loc[3]], raw[pos+loc[4]:pos+loc[5]]
		} else {
			ts, word = raw[pos+loc[6]:pos+loc[7]], raw[pos+loc[8]:pos+loc[9]]
		}
		pos = end
		if word = strings.TrimSpace(word); word == "" {
			continue
		}
		times = append(times, ts)
		words = append(words, word)
	}
	if len(words) == 0 {
		return Document{}, nil
	}

	final, ok := finalTime(raw)
	if !ok {
		return Document{}, ErrNoFinalTime
	}

	times, err := collapse(times, opts.MergeThreshold)
	if err != nil {
		return Document{}, err
	}
	if len(times) != len(words) {
		return Document{}, fmt.Errorf("%w: %d timestamps, %d words", ErrCueMismatch, len(times), len(words))
	}

	cues := make([]types.Cue, len(words))
	for i := range words {
		cues[i] = types.Cue{Time: times[i], Word: words[i]}
	}
	return Document{Cues: cues, Final: final}, nil
}

// collapse drops timestamps that follow the last kept one by no more than threshold.
func collapse(times []string, threshold time.Duration) ([]string, error) {
	out := make([]string, 0, len(times))
	var last time.Duration
	for i, ts := range times {
		sec, err := ParseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		// compare in whole milliseconds so 3.181-3.170 counts as 11ms
		at := time.Duration(math.Round(sec*1000)) * time.Millisecond
		if i > 0 && at-last <= threshold {
			continue
		}
		out = append(out, ts)
		last = at
	}
	return out, nil
}

func finalTime(raw string) (string, bool) {
	lines := strings.Split(raw, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if m := reFinal.FindStringSubmatch(lines[i]); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ParseTimestamp converts "H:MM:SS.mmm" to seconds. Hours may have any number of digits.
func ParseTimestamp(ts string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}
	var total float64
	for i, unit := range []float64{3600, 60, 1} {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		total += v * unit
	}
	return total, nil
}
