package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/forPelevin/ytsnip/internal/clips"
	"github.com/forPelevin/ytsnip/internal/types"
)

func TestFmtSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.000"},
		{10400 * time.Millisecond, "10.400"},
		{time.Hour + 1500*time.Millisecond, "3601.500"},
	}
	for _, tt := range tests {
		if got := fmtSeconds(tt.in); got != tt.want {
			t.Fatalf("fmtSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderArgs(t *testing.T) {
	got := renderArgs("in.mp4", 10400*time.Millisecond, 11400*time.Millisecond, "out.mp4")
	if got[0] != "-y" || got[len(got)-1] != "out.mp4" {
		t.Fatalf("unexpected args: %v", got)
	}
	i := slices.Index(got, "-ss")
	if i < 0 || got[i+1] != "10.400" {
		t.Fatalf("missing -ss: %v", got)
	}
	j := slices.Index(got, "-to")
	if j < 0 || got[j+1] != "11.400" {
		t.Fatalf("missing -to: %v", got)
	}
	if k := slices.Index(got, "-i"); k < 0 || k < j || got[k+1] != "in.mp4" {
		t.Fatalf("input must follow the seek flags: %v", got)
	}
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("  12.5\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d != 12500*time.Millisecond {
		t.Fatalf("got %v", d)
	}
	if _, err := parseDuration("N/A"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestExtract_MissingMedia(t *testing.T) {
	dir := t.TempDir()
	a := New(Options{MediaDir: filepath.Join(dir, "media"), ClipsDir: filepath.Join(dir, "clips")})
	_, err := a.Extract(context.Background(), types.ClipRequest{VideoID: "abcdefghijk", Start: 1, End: 2, Label: "x"})
	if err == nil {
		t.Fatalf("expected an error for missing media")
	}
}

func TestExtract_SkipsExistingClip(t *testing.T) {
	dir := t.TempDir()
	req := types.ClipRequest{VideoID: "abcdefghijk", Start: 1, End: 2, Label: "x"}
	out := clips.Path(dir, req)
	if err := os.WriteFile(out, []byte("mp4"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(Options{FFmpeg: filepath.Join(dir, "no-ffmpeg"), ClipsDir: dir})
	got, err := a.Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != out {
		t.Fatalf("got %q, want %q", got, out)
	}
}
