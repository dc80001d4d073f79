package types

// Cue is one (timestamp, word) pair as it appears in the caption markup.
type Cue struct {
	Time string `json:"time"`
	Word string `json:"word"`
}

// Interval is a span of the transcript resolved to time and word ordinals.
// StartWord is inclusive, EndWord exclusive.
type Interval struct {
	Start     float64 `json:"start_sec"`
	End       float64 `json:"end_sec"`
	StartWord int     `json:"start_word"`
	EndWord   int     `json:"end_word"`
	Text      string  `json:"text"`
}

type ClipRequest struct {
	VideoID string
	Start   float64
	End     float64
	Label   string
}

type Project struct {
	Videos []string `json:"videos"`
}

// Progress locates a refinement within the run, for display.
type Progress struct {
	VideoID    string
	Video      int
	VideoCount int
	Match      int
	MatchCount int
}

// VideoMatches is the search result for one video.
type VideoMatches struct {
	VideoID   string     `json:"video_id"`
	Intervals []Interval `json:"intervals"`
}
