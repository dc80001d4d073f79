package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/forPelevin/ytsnip/internal/config"
	"github.com/forPelevin/ytsnip/internal/pipeline"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-project <project>",
		Short: "Create an empty project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pipeline.NewProject(args[0])
		},
	}
}

func addVideosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-videos <project> <video>...",
		Short: "Add videos (ids or URLs) to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := pipeline.AddVideos(args[0], args[1:])
			return err
		},
	}
}

func removeVideosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-videos <project> [video...]",
		Short: "Remove videos from a project, or all of them when none are given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pipeline.RemoveVideos(args[0], args[1:])
		},
	}
}

func listVideosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-videos <project>",
		Short: "Print the videos of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := pipeline.ListVideos(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func downloadSubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-subs <project> [video...]",
		Short: "Download caption tracks for the given videos, or the whole project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineConfig(cmd, args[0], "", args[1:])
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			_, err = pipeline.FetchCaptions(ctx, cfg)
			return err
		},
	}
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <project> <regex> [video...]",
		Short: "Print every match without extracting anything",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineConfig(cmd, args[0], args[1], args[2:])
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()
			matches, runErr := pipeline.Search(ctx, cfg)

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(matches); err != nil {
					return err
				}
				return runErr
			}
			for _, vm := range matches {
				for _, iv := range vm.Intervals {
					fmt.Fprintf(out, "%s\t%.3f\t%.3f\t%q\n", vm.VideoID, iv.Start, iv.End, iv.Text)
				}
			}
			return runErr
		},
	}
	cmd.Flags().Bool("json", false, "Print matches as JSON")
	return cmd
}

func downloadClipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download-clips <project> <regex> [video...]",
		Short: "Refine every match interactively and download the confirmed clips",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pipelineConfig(cmd, args[0], args[1], args[2:])
			if err != nil {
				return err
			}
			cfg.NoRefine, _ = cmd.Flags().GetBool("no-refine")
			ctx, stop := signalContext()
			defer stop()
			_, err = pipeline.Run(ctx, cfg)
			return err
		},
	}
	cmd.Flags().Bool("no-refine", false, "Download every match as found, without the refinement UI")
	return cmd
}

func pipelineConfig(cmd *cobra.Command, projectPath, pattern string, videos []string) (pipeline.Config, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return pipeline.Config{}, err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	cfg := pipeline.Config{
		ProjectPath: projectPath,
		Videos:      videos,
		Pattern:     pattern,
		Settings:    settings,
		Logf:        newLogf(cmd.ErrOrStderr(), quiet, nil),
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loadSettings layers the config file, then YTSNIP_* variables, then flags.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("YTSNIP_CONFIG")
	}
	s, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if v := os.Getenv("YTSNIP_YTDLP"); v != "" {
		s.Tools.YtDlp = v
	}
	if v := os.Getenv("YTSNIP_FFMPEG"); v != "" {
		s.Tools.FFmpeg = v
	}

	str := func(name string, dst *string) {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}
	str("captions-dir", &s.Paths.CaptionsDir)
	str("clips-dir", &s.Paths.ClipsDir)
	str("lang", &s.Lang)
	str("yt-dlp", &s.Tools.YtDlp)
	str("ffmpeg", &s.Tools.FFmpeg)
	str("extractor", &s.Tools.Extractor)
	return s, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
