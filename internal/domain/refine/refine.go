package refine

import (
	"strings"

	"github.com/forPelevin/ytsnip/internal/domain/timeline"
	"github.com/forPelevin/ytsnip/internal/types"
)

// DefaultContextWords bounds how many words of context are shown on each side.
const DefaultContextWords = 10

type Action int

const (
	ExtendLeft Action = iota
	ExtendRight
	ShrinkLeft
	ShrinkRight
	Skip
	Confirm
)

func (a Action) String() string {
	switch a {
	case ExtendLeft:
		return "extend-left"
	case ExtendRight:
		return "extend-right"
	case ShrinkLeft:
		return "shrink-left"
	case ShrinkRight:
		return "shrink-right"
	case Skip:
		return "skip"
	case Confirm:
		return "confirm"
	default:
		return "unknown"
	}
}

type State int

const (
	Open State = iota
	Skipped
	Confirmed
)

// View is what a surface needs to render one step.
type View struct {
	Left     string
	Selected string
	Right    string
	Actions  []Action
}

// Can reports whether a is currently available.
func (v View) Can(a Action) bool {
	for _, x := range v.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Selection is the word range [Start, End) being refined for one match, in
// ordinals of the video's timeline.
type Selection struct {
	tl      timeline.Timeline
	context int
	start   int
	end     int
	state   State
}

// New starts a selection at the match's ordinals, clamped into [0, tl.Len()]
// and widened to at least one word.
func New(tl timeline.Timeline, match types.Interval, contextWords int) *Selection {
	if contextWords <= 0 {
		contextWords = DefaultContextWords
	}
	n := tl.Len()
	start := clamp(match.StartWord, 0, n)
	end := clamp(match.EndWord, start, n)
	if end == start {
		if end < n {
			end++
		} else if start > 0 {
			start--
		}
	}
	return &Selection{tl: tl, context: contextWords, start: start, end: end}
}

func (s *Selection) Bounds() (int, int) { return s.start, s.end }
func (s *Selection) State() State       { return s.state }
func (s *Selection) Done() bool         { return s.state != Open }

func (s *Selection) leftContext() int  { return min(s.context, s.start) }
func (s *Selection) rightContext() int { return min(s.context, s.tl.Len()-s.end) }
func (s *Selection) canShrink() bool   { return s.end-s.start > 1 }

// Actions lists what Apply will accept right now.
func (s *Selection) Actions() []Action {
	if s.Done() {
		return nil
	}
	var out []Action
	if s.leftContext() > 0 {
		out = append(out, ExtendLeft)
	}
	if s.rightContext() > 0 {
		out = append(out, ExtendRight)
	}
	if s.canShrink() {
		out = append(out, ShrinkLeft, ShrinkRight)
	}
	return append(out, Skip, Confirm)
}

// Apply performs a if it is available and reports whether the selection changed
// state. Unavailable actions are ignored.
func (s *Selection) Apply(a Action) bool {
	if s.Done() {
		return false
	}
	switch a {
	case ExtendLeft:
		if s.leftContext() == 0 {
			return false
		}
		s.start--
	case ExtendRight:
		if s.rightContext() == 0 {
			return false
		}
		s.end++
	case ShrinkLeft:
		if !s.canShrink() {
			return false
		}
		s.start++
	case ShrinkRight:
		if !s.canShrink() {
			return false
		}
		s.end--
	case Skip:
		s.state = Skipped
	case Confirm:
		s.state = Confirmed
	default:
		return false
	}
	return true
}

func (s *Selection) View() View {
	left := s.leftContext()
	right := s.rightContext()
	return View{
		Left:     s.text(s.start-left, s.start),
		Selected: s.text(s.start, s.end),
		Right:    s.text(s.end, s.end+right),
		Actions:  s.Actions(),
	}
}

// Span is the time range of the current selection, read from the timeline's
// marks.
func (s *Selection) Span() (float64, float64) {
	if s.tl.Len() == 0 {
		return 0, 0
	}
	return s.tl.Span(s.start, s.end)
}

// Clip turns a confirmed selection into an extraction request. ok is false
// unless the selection was confirmed.
func (s *Selection) Clip(videoID, label string) (types.ClipRequest, bool) {
	if s.state != Confirmed || s.tl.Len() == 0 {
		return types.ClipRequest{}, false
	}
	start, end := s.Span()
	return types.ClipRequest{VideoID: videoID, Start: start, End: end, Label: label}, true
}

func (s *Selection) text(from, to int) string {
	return strings.Join(s.tl.Words[from:to], " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
