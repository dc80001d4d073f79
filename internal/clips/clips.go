// Package clips names clip files and computes their padded ranges.
package clips

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/forPelevin/ytsnip/internal/fsutil"
	"github.com/forPelevin/ytsnip/internal/types"
)

// Path names the output of req: <label>+<id>+<start>-<end>.mp4, using the
// unpadded interval.
func Path(dir string, req types.ClipRequest) string {
	name := fmt.Sprintf("%s+%s+%s-%s.mp4",
		fsutil.SanitizeName(req.Label), req.VideoID, Seconds(req.Start), Seconds(req.End))
	return filepath.Join(dir, name)
}

// Pad widens req by the given seconds on each side. The start never goes
// below zero.
func Pad(req types.ClipRequest, left, right float64) (start, end float64) {
	return max(req.Start-left, 0), req.End + right
}

// Seconds formats sec with the fewest digits that round-trip.
func Seconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
