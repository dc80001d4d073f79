// Package config loads ytsnip.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/ytsnip/internal/domain/captions"
	"github.com/forPelevin/ytsnip/internal/domain/refine"
	"github.com/forPelevin/ytsnip/internal/domain/timeline"
	"github.com/forPelevin/ytsnip/internal/ratelimit"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "ytsnip.yaml"

const (
	ExtractorYtdlp  = "ytdlp"
	ExtractorFFmpeg = "ffmpeg"
)

type Config struct {
	Lang   string `yaml:"lang"`
	Tuning Tuning `yaml:"tuning"`
	Paths  Paths  `yaml:"paths"`
	Tools  Tools  `yaml:"tools"`
}

type Tuning struct {
	MergeThreshold    time.Duration `yaml:"merge_threshold"`
	GapThreshold      time.Duration `yaml:"gap_threshold"`
	GapMarker         string        `yaml:"gap_marker"`
	ContextWords      int           `yaml:"context_words"`
	MinExtractSpacing time.Duration `yaml:"min_extract_spacing"`
	// Pads are seconds added around a clip before extraction.
	LeftPad  float64 `yaml:"left_pad"`
	RightPad float64 `yaml:"right_pad"`
}

type Paths struct {
	CaptionsDir    string `yaml:"captions_dir"`
	ClipsDir       string `yaml:"clips_dir"`
	NoCaptionsFile string `yaml:"no_captions_file"`
	// MediaDir holds <id>.mp4 files for the ffmpeg extractor.
	MediaDir string `yaml:"media_dir"`
}

type Tools struct {
	YtDlp     string `yaml:"yt_dlp"`
	FFmpeg    string `yaml:"ffmpeg"`
	FFprobe   string `yaml:"ffprobe"`
	Extractor string `yaml:"extractor"`
	// Install fetches a managed yt-dlp binary when none is configured.
	Install bool `yaml:"install"`
}

func Default() Config {
	return Config{
		Lang: "en",
		Tuning: Tuning{
			MergeThreshold:    captions.DefaultMergeThreshold,
			GapThreshold:      timeline.DefaultGapThreshold,
			GapMarker:         timeline.DefaultGapMarker,
			ContextWords:      refine.DefaultContextWords,
			MinExtractSpacing: ratelimit.DefaultSpacing,
			LeftPad:           0.0,
			RightPad:          0.4,
		},
		Paths: Paths{
			CaptionsDir:    "subtitles",
			ClipsDir:       "clips",
			NoCaptionsFile: filepath.Join("subtitles", "no_captions.txt"),
			MediaDir:       "media",
		},
		Tools: Tools{
			YtDlp:     "yt-dlp",
			FFmpeg:    "ffmpeg",
			FFprobe:   "ffprobe",
			Extractor: ExtractorYtdlp,
		},
	}
}

// Load reads path over the defaults. When path is empty DefaultPath is tried
// and its absence is not an error; an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Lang = strings.TrimSpace(c.Lang)
	c.Tools.Extractor = strings.ToLower(strings.TrimSpace(c.Tools.Extractor))
	def := Default()
	if c.Lang == "" {
		c.Lang = def.Lang
	}
	if c.Tools.Extractor == "" {
		c.Tools.Extractor = def.Tools.Extractor
	}
	if c.Paths.CaptionsDir == "" {
		c.Paths.CaptionsDir = def.Paths.CaptionsDir
	}
	if c.Paths.ClipsDir == "" {
		c.Paths.ClipsDir = def.Paths.ClipsDir
	}
	if c.Paths.NoCaptionsFile == "" {
		c.Paths.NoCaptionsFile = filepath.Join(c.Paths.CaptionsDir, "no_captions.txt")
	}
}

func (c Config) Validate() error {
	t := c.Tuning
	switch {
	case t.MergeThreshold < 0:
		return errors.New("tuning.merge_threshold must be >= 0")
	case t.GapThreshold <= 0:
		return errors.New("tuning.gap_threshold must be > 0")
	case t.ContextWords <= 0:
		return errors.New("tuning.context_words must be > 0")
	case t.MinExtractSpacing < 0:
		return errors.New("tuning.min_extract_spacing must be >= 0")
	case t.LeftPad < 0 || t.RightPad < 0:
		return errors.New("tuning pads must be >= 0")
	}
	if err := ValidateGapMarker(t.GapMarker); err != nil {
		return err
	}
	if c.Lang == "" {
		return errors.New("lang is empty")
	}
	switch c.Tools.Extractor {
	case ExtractorYtdlp, ExtractorFFmpeg:
	default:
		return fmt.Errorf("tools.extractor must be %q or %q, got %q", ExtractorYtdlp, ExtractorFFmpeg, c.Tools.Extractor)
	}
	if c.Tools.Extractor == ExtractorFFmpeg && c.Paths.MediaDir == "" {
		return errors.New("paths.media_dir is required for the ffmpeg extractor")
	}
	return nil
}

// ValidateGapMarker requires a whitespace token that contains no plain space.
// Such a marker is never part of a \S+ match and never crossed by '.', so the
// word index and alphabetic searches ignore it.
func ValidateGapMarker(m string) error {
	if m == "" {
		return errors.New("tuning.gap_marker is empty")
	}
	if strings.TrimSpace(m) != "" || strings.Contains(m, " ") {
		return fmt.Errorf("tuning.gap_marker must be whitespace other than ' ', got %q", m)
	}
	if !strings.Contains(m, "\n") {
		return fmt.Errorf("tuning.gap_marker must contain a newline, got %q", m)
	}
	return nil
}
