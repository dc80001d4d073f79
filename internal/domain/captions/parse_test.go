package captions

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const niceDayVTT = `WEBVTT
Kind: captions
Language: en

00:00:10.000 --> 00:00:10.990 align:start position:0%

have<00:00:10.200><c> a</c><00:00:10.400><c> nice</c><00:00:10.600><c> day</c>

00:00:10.990 --> 00:00:11.000 align:start position:0%
have a nice day

`

func TestParse_HeaderAndInlineCues(t *testing.T) {
	doc, err := Parse(niceDayVTT, Options{MergeThreshold: DefaultMergeThreshold})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	wantWords := []string{"have", "a", "nice", "day"}
	wantTimes := []string{"00:00:10.000", "00:00:10.200", "00:00:10.400", "00:00:10.600"}
	if len(doc.Cues) != len(wantWords) {
		t.Fatalf("expected %d cues, got %d: %+v", len(wantWords), len(doc.Cues), doc.Cues)
	}
	for i, c := range doc.Cues {
		if c.Word != wantWords[i] || c.Time != wantTimes[i] {
			t.Fatalf("cue %d = %+v, want (%s, %s)", i, c, wantTimes[i], wantWords[i])
		}
	}
	if doc.Final != "00:00:11.000" {
		t.Fatalf("unexpected final time: %q", doc.Final)
	}
}

func TestParse_CRLF(t *testing.T) {
	doc, err := Parse(strings.ReplaceAll(niceDayVTT, "\n", "\r\n"), Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Cues) != 4 {
		t.Fatalf("expected 4 cues, got %d", len(doc.Cues))
	}
}

func TestParse_NoCuesIsEmpty(t *testing.T) {
	for _, in := range []string{"", "WEBVTT\n\n", "just some text\nwithout cues\n"} {
		doc, err := Parse(in, Options{})
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", in, err)
		}
		if !doc.Empty() {
			t.Fatalf("Parse(%q): expected empty document, got %+v", in, doc)
		}
	}
}

func TestParse_NoFinalTime(t *testing.T) {
	_, err := Parse("<00:00:01.000><c> hi</c>", Options{})
	if !errors.Is(err, ErrNoFinalTime) {
		t.Fatalf("expected ErrNoFinalTime, got %v", err)
	}
}

func TestParse_HeaderWithoutTagResumesScan(t *testing.T) {
	in := "00:00:01.000 --> 00:00:03.000\nhello<00:00:01.500><c> world</c>\ntrailing\n"
	doc, err := Parse(in, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Word != "world" || doc.Cues[0].Time != "00:00:01.500" {
		t.Fatalf("unexpected cues: %+v", doc.Cues)
	}
	if doc.Final != "00:00:03.000" {
		t.Fatalf("unexpected final: %q", doc.Final)
	}
}

func TestParse_BlankWordDropped(t *testing.T) {
	in := "00:00:01.000 --> 00:00:03.000\n \nhi<00:00:01.500><c>  </c><00:00:02.000><c> there</c>\n"
	doc, err := Parse(in, Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Cues) != 2 || doc.Cues[0].Word != "hi" || doc.Cues[1].Word != "there" {
		t.Fatalf("unexpected cues: %+v", doc.Cues)
	}
}

func TestParse_MergeThreshold(t *testing.T) {
	tests := []struct {
		name     string
		second   string
		wantErr  bool
		wantCues int
	}{
		{"within", "00:00:01.005", true, 0},
		{"exactly 11ms", "00:00:01.011", true, 0},
		{"beyond", "00:00:01.012", false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "00:00:01.000 --> 00:00:02.000\n \none<" + tt.second + "><c> two</c>\n"
			doc, err := Parse(in, Options{MergeThreshold: DefaultMergeThreshold})
			if tt.wantErr {
				if !errors.Is(err, ErrCueMismatch) {
					t.Fatalf("expected ErrCueMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(doc.Cues) != tt.wantCues {
				t.Fatalf("expected %d cues, got %d", tt.wantCues, len(doc.Cues))
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0:00:01.500", 1.5, false},
		{"00:00:10.200", 10.2, false},
		{"1:02:03.004", 3723.004, false},
		{"123:00:00.000", 442800, false},
		{"01:02", 0, true},
		{"a:b:c", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
