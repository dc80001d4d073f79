package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forPelevin/ytsnip/internal/clips"
	"github.com/forPelevin/ytsnip/internal/fsutil"
	"github.com/forPelevin/ytsnip/internal/ports"
	"github.com/forPelevin/ytsnip/internal/types"
	"github.com/lrstanley/go-ytdlp"
)

const watchURL = "https://www.youtube.com/watch?v="

type Options struct {
	// Bin is the yt-dlp executable; empty uses whatever go-ytdlp resolves.
	Bin    string
	FFmpeg string
	Lang   string

	CaptionsDir string
	ClipsDir    string
	LeftPad     float64
	RightPad    float64

	Logf func(format string, args ...any)
}

// Adapter fetches auto-captions and downloads clip sections with yt-dlp.
type Adapter struct {
	o Options
}

func New(o Options) *Adapter {
	if o.Lang == "" {
		o.Lang = "en"
	}
	if o.Logf == nil {
		o.Logf = func(string, ...any) {}
	}
	return &Adapter{o: o}
}

// Install downloads a managed yt-dlp build (cached by go-ytdlp) and returns its
// path.
func Install(ctx context.Context) (string, error) {
	r, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("install yt-dlp: %w", err)
	}
	return r.Executable, nil
}

func (a *Adapter) command() *ytdlp.Command {
	c := ytdlp.New().NoPlaylist().NoProgress()
	if a.o.Bin != "" {
		c.SetExecutable(a.o.Bin)
	}
	if a.o.FFmpeg != "" {
		c.FFmpegLocation(a.o.FFmpeg)
	}
	return c
}

// CaptionPath is where the caption track of id is cached.
func CaptionPath(dir, id, lang string) string {
	return filepath.Join(dir, id+"."+lang+".vtt")
}

// Fetch returns the cached caption track of id, downloading it first when it is
// not on disk. A download that produces no file means the video has no
// captions in the configured language.
func (a *Adapter) Fetch(ctx context.Context, id string) (string, error) {
	path := CaptionPath(a.o.CaptionsDir, id, a.o.Lang)
	if !fsutil.Exists(path) {
		if err := os.MkdirAll(a.o.CaptionsDir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir captions dir: %w", err)
		}
		a.o.Logf("fetching captions: %s", id)
		_, err := a.command().
			SkipDownload().
			WriteAutoSubs().
			SubLangs(a.o.Lang).
			SubFormat("vtt").
			Output(filepath.Join(a.o.CaptionsDir, "%(id)s")).
			Run(ctx, watchURL+id)
		if err != nil {
			return "", fmt.Errorf("yt-dlp captions %s: %w", id, err)
		}
		if !fsutil.Exists(path) {
			return "", fmt.Errorf("%s: %w", id, ports.ErrNoCaptions)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}
	return string(b), nil
}

// Section is the padded download range of req in yt-dlp's --download-sections
// syntax.
func Section(req types.ClipRequest, leftPad, rightPad float64) string {
	start, end := clips.Pad(req, leftPad, rightPad)
	return "*" + clips.Seconds(start) + "-" + clips.Seconds(end)
}

// Extract downloads the padded section of req. An existing output file is kept
// and returned as is.
func (a *Adapter) Extract(ctx context.Context, req types.ClipRequest) (string, error) {
	out := clips.Path(a.o.ClipsDir, req)
	if fsutil.Exists(out) {
		a.o.Logf("clip exists, skipping: %s", out)
		return out, nil
	}
	if err := os.MkdirAll(a.o.ClipsDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir clips dir: %w", err)
	}
	_, err := a.command().
		DownloadSections(Section(req, a.o.LeftPad, a.o.RightPad)).
		ForceKeyframesAtCuts().
		MergeOutputFormat("mp4").
		Output(out).
		Run(ctx, watchURL+req.VideoID)
	if err != nil {
		return "", fmt.Errorf("yt-dlp clip %s: %w", req.VideoID, err)
	}
	return out, nil
}
