package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// newLogf prints "[15:04:05] message" lines to w. quiet discards everything.
func newLogf(w io.Writer, quiet bool, now func() time.Time) func(string, ...any) {
	if quiet {
		return func(string, ...any) {}
	}
	if now == nil {
		now = time.Now
	}
	return func(format string, args ...any) {
		msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
		fmt.Fprintf(w, "[%s] %s\n", now().Format("15:04:05"), msg)
	}
}
