package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/forPelevin/ytsnip/internal/clips"
	"github.com/forPelevin/ytsnip/internal/fsutil"
	"github.com/forPelevin/ytsnip/internal/types"
)

// Adapter cuts clips out of videos that are already on disk as
// <media dir>/<id>.mp4.
type Adapter struct {
	ffmpeg  string
	ffprobe string

	mediaDir string
	clipsDir string
	leftPad  float64
	rightPad float64
	logf     func(format string, args ...any)
}

type Options struct {
	FFmpeg   string
	FFprobe  string
	MediaDir string
	ClipsDir string
	LeftPad  float64
	RightPad float64
	Logf     func(format string, args ...any)
}

func New(o Options) *Adapter {
	if o.FFmpeg == "" {
		o.FFmpeg = "ffmpeg"
	}
	if o.FFprobe == "" {
		o.FFprobe = "ffprobe"
	}
	if o.Logf == nil {
		o.Logf = func(string, ...any) {}
	}
	return &Adapter{
		ffmpeg:   o.FFmpeg,
		ffprobe:  o.FFprobe,
		mediaDir: o.MediaDir,
		clipsDir: o.ClipsDir,
		leftPad:  o.LeftPad,
		rightPad: o.RightPad,
		logf:     o.Logf,
	}
}

// MediaPath is the local source video for id.
func (a *Adapter) MediaPath(id string) string {
	return filepath.Join(a.mediaDir, id+".mp4")
}

func (a *Adapter) Extract(ctx context.Context, req types.ClipRequest) (string, error) {
	out := clips.Path(a.clipsDir, req)
	if fsutil.Exists(out) {
		a.logf("clip exists, skipping: %s", out)
		return out, nil
	}
	in := a.MediaPath(req.VideoID)
	if _, err := os.Stat(in); err != nil {
		return "", fmt.Errorf("local media for %s: %w", req.VideoID, err)
	}

	start, end := clips.Pad(req, a.leftPad, a.rightPad)
	if dur, err := a.ProbeDuration(ctx, in); err == nil && dur > 0 {
		end = min(end, dur.Seconds())
	} else if err != nil {
		a.logf("probe %s failed, cutting unclamped: %v", in, err)
	}
	if end <= start {
		return "", fmt.Errorf("clip %s [%s, %s) is outside the media", req.VideoID, clips.Seconds(start), clips.Seconds(end))
	}

	if err := os.MkdirAll(a.clipsDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir clips dir: %w", err)
	}
	if err := a.RenderClip(ctx, in, seconds(start), seconds(end), out); err != nil {
		return "", err
	}
	return out, nil
}

func (a *Adapter) RenderClip(ctx context.Context, inMP4 string, start, end time.Duration, outMP4 string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, renderArgs(inMP4, start, end, outMP4)...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, string(b))
	}
	return nil
}

func renderArgs(inMP4 string, start, end time.Duration, outMP4 string) []string {
	return []string{
		"-y",
		"-ss", fmtSeconds(start),
		"-to", fmtSeconds(end),
		"-i", inMP4,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		outMP4,
	}
}

func (a *Adapter) ProbeDuration(ctx context.Context, inMP4 string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inMP4,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	return parseDuration(string(b))
}

func parseDuration(out string) (time.Duration, error) {
	s := strings.TrimSpace(out)
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return seconds(sec), nil
}

func seconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

func fmtSeconds(d time.Duration) string {
	sec := float64(d) / float64(time.Second)
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
