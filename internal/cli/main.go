package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := newRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "ytsnip",
		Short: "Search YouTube auto-captions and cut clips of the matches",
		Example: `  ytsnip new-project projects/hello.json
  ytsnip add-videos projects/hello.json ab1cd_2efg3 https://youtu.be/hij2klmn-op
  ytsnip download-clips projects/hello.json "hello|hi"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	f := root.PersistentFlags()
	f.String("config", "", "Config file (default ytsnip.yaml if present, or $YTSNIP_CONFIG)")
	f.String("captions-dir", "", "Directory for cached caption tracks")
	f.String("clips-dir", "", "Directory for extracted clips")
	f.String("lang", "", "Caption language")
	f.String("yt-dlp", "", "yt-dlp executable")
	f.String("ffmpeg", "", "ffmpeg executable")
	f.String("extractor", "", "Clip extractor: ytdlp or ffmpeg")
	f.Bool("quiet", false, "Suppress progress logs")

	root.AddCommand(
		newProjectCmd(),
		addVideosCmd(),
		removeVideosCmd(),
		listVideosCmd(),
		downloadSubsCmd(),
		searchCmd(),
		downloadClipsCmd(),
	)
	return root
}
