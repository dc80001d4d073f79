package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/forPelevin/ytsnip/internal/config"
	"github.com/forPelevin/ytsnip/internal/domain/captions"
	"github.com/forPelevin/ytsnip/internal/domain/timeline"
	"github.com/forPelevin/ytsnip/internal/nocaptions"
	"github.com/forPelevin/ytsnip/internal/ports"
	"github.com/forPelevin/ytsnip/internal/ports/adapters/auto"
	"github.com/forPelevin/ytsnip/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/ytsnip/internal/ports/adapters/tui"
	"github.com/forPelevin/ytsnip/internal/ports/adapters/ytdlp"
	"github.com/forPelevin/ytsnip/internal/project"
	"github.com/forPelevin/ytsnip/internal/ratelimit"
	"github.com/forPelevin/ytsnip/internal/types"
	"github.com/forPelevin/ytsnip/internal/usecase"
)

type Config struct {
	ProjectPath string
	// Videos are ids or URLs; empty means every video in the project.
	Videos  []string
	Pattern string
	// NoRefine confirms every match as found instead of asking.
	NoRefine bool

	Settings config.Config
	Logf     func(format string, args ...any)

	// Terminal streams for the refinement UI; nil means stdin/stdout.
	In  io.Reader
	Out io.Writer
}

func (c Config) Validate() error {
	if c.ProjectPath == "" {
		return errors.New("project path is empty")
	}
	if c.Pattern != "" {
		if _, err := compile(c.Pattern); err != nil {
			return err
		}
	}
	return c.Settings.Validate()
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("search pattern is empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return re, nil
}

func logger(cfg Config) func(string, ...any) {
	if cfg.Logf == nil {
		return func(string, ...any) {}
	}
	return cfg.Logf
}

// Search is the dry run: every match in every selected video, nothing
// extracted.
func Search(ctx context.Context, cfg Config) ([]types.VideoMatches, error) {
	re, err := compile(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	videos, err := selectVideos(cfg)
	if err != nil {
		return nil, err
	}
	deps, err := captionDeps(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res, err := usecase.New(deps).Search(ctx, usecase.Input{
		Videos:  videos,
		Pattern: re,
		Tuning:  tuning(cfg.Settings),
		Logf:    logger(cfg),
	})
	return res.Matches, err
}

// Run adds the given videos to the project, then refines and extracts every
// match.
func Run(ctx context.Context, cfg Config) (usecase.Result, error) {
	logf := logger(cfg)
	re, err := compile(cfg.Pattern)
	if err != nil {
		return usecase.Result{}, err
	}
	videos, err := addAndSelect(cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	deps, err := captionDeps(ctx, cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	deps.Extractor = extractor(cfg, deps.Captions)
	deps.Limiter = ratelimit.New(cfg.Settings.Tuning.MinExtractSpacing)
	if cfg.NoRefine {
		deps.Refiner = auto.New(logf)
	} else {
		deps.Refiner = tui.New(cfg.In, cfg.Out)
	}

	logf("searching %d videos for %q", len(videos), re.String())
	res, err := usecase.New(deps).Run(ctx, usecase.Input{
		Videos:  videos,
		Pattern: re,
		Tuning:  tuning(cfg.Settings),
		Logf:    logf,
	})
	logf("done: %d clips, %d skipped, %d without captions", len(res.Clips), res.Skipped, len(res.NoCaptions))
	return res, err
}

// FetchCaptions adds the given videos to the project and downloads their
// caption tracks.
func FetchCaptions(ctx context.Context, cfg Config) (usecase.Result, error) {
	videos, err := addAndSelect(cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	deps, err := captionDeps(ctx, cfg)
	if err != nil {
		return usecase.Result{}, err
	}
	return usecase.New(deps).FetchCaptions(ctx, videos, logger(cfg))
}

func tuning(s config.Config) usecase.Tuning {
	return usecase.Tuning{
		Captions: captions.Options{MergeThreshold: s.Tuning.MergeThreshold},
		Timeline: timeline.Options{
			GapThreshold: s.Tuning.GapThreshold,
			GapMarker:    s.Tuning.GapMarker,
		},
		ContextWords: s.Tuning.ContextWords,
	}
}

func captionDeps(ctx context.Context, cfg Config) (usecase.Deps, error) {
	s := cfg.Settings
	absent, err := nocaptions.Open(s.Paths.NoCaptionsFile)
	if err != nil {
		return usecase.Deps{}, err
	}
	if n := absent.Len(); n > 0 {
		logger(cfg)("%d videos known to have no captions", n)
	}
	bin := s.Tools.YtDlp
	if s.Tools.Install {
		if bin, err = ytdlp.Install(ctx); err != nil {
			return usecase.Deps{}, err
		}
		logger(cfg)("using managed yt-dlp: %s", bin)
	}
	yt := ytdlp.New(ytdlp.Options{
		Bin:         bin,
		FFmpeg:      s.Tools.FFmpeg,
		Lang:        s.Lang,
		CaptionsDir: s.Paths.CaptionsDir,
		ClipsDir:    s.Paths.ClipsDir,
		LeftPad:     s.Tuning.LeftPad,
		RightPad:    s.Tuning.RightPad,
		Logf:        cfg.Logf,
	})
	return usecase.Deps{Captions: yt, Absent: absent}, nil
}

// extractor picks the clip source. The yt-dlp adapter already serving captions
// doubles as the remote extractor.
func extractor(cfg Config, src ports.CaptionSource) ports.ClipExtractor {
	s := cfg.Settings
	if s.Tools.Extractor == config.ExtractorFFmpeg {
		return ffmpeg.New(ffmpeg.Options{
			FFmpeg:   s.Tools.FFmpeg,
			FFprobe:  s.Tools.FFprobe,
			MediaDir: s.Paths.MediaDir,
			ClipsDir: s.Paths.ClipsDir,
			LeftPad:  s.Tuning.LeftPad,
			RightPad: s.Tuning.RightPad,
			Logf:     cfg.Logf,
		})
	}
	if ex, ok := src.(ports.ClipExtractor); ok {
		return ex
	}
	return ytdlp.New(ytdlp.Options{
		Bin:      s.Tools.YtDlp,
		FFmpeg:   s.Tools.FFmpeg,
		ClipsDir: s.Paths.ClipsDir,
		LeftPad:  s.Tuning.LeftPad,
		RightPad: s.Tuning.RightPad,
		Logf:     cfg.Logf,
	})
}

// ensure adapters implement ports
var _ ports.CaptionSource = (*ytdlp.Adapter)(nil)
var _ ports.ClipExtractor = (*ytdlp.Adapter)(nil)
var _ ports.ClipExtractor = (*ffmpeg.Adapter)(nil)
var _ ports.Refiner = (*tui.Adapter)(nil)
var _ ports.Refiner = (*auto.Adapter)(nil)
var _ ports.AbsenceCache = (*nocaptions.Cache)(nil)
var _ ports.Limiter = (*ratelimit.Limiter)(nil)
var _ ports.ProjectStore = (*project.Store)(nil)
