//go:build integration

package itest

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// probeDurationSeconds reads a container duration with ffprobe, independently
// of the adapter under test.
func probeDurationSeconds(mp4Path string) (float64, error) {
	b, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		mp4Path,
	).CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w\n%s", err, string(b))
	}
	return strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
}
