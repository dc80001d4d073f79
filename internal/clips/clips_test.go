package clips

import (
	"path/filepath"
	"testing"

	"github.com/forPelevin/ytsnip/internal/types"
)

func TestPath(t *testing.T) {
	got := Path("clips", types.ClipRequest{VideoID: "5pGepIfFxzQ", Start: 10.4, End: 11, Label: "(as always)? have a nice day"})
	want := filepath.Join("clips", "_as_always___have_a_nice_day+5pGepIfFxzQ+10.4-11.mp4")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name               string
		req                types.ClipRequest
		left, right        float64
		wantStart, wantEnd float64
	}{
		{"default pads", types.ClipRequest{Start: 10.4, End: 11}, 0, 0.4, 10.4, 11.4},
		{"left pad", types.ClipRequest{Start: 10.5, End: 12}, 0.25, 0, 10.25, 12},
		{"start clamped", types.ClipRequest{Start: 0.1, End: 1}, 0.3, 0.4, 0, 1.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Pad(tt.req, tt.left, tt.right)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("got (%v, %v), want (%v, %v)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
