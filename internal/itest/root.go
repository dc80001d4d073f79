//go:build integration

package itest

import (
	"fmt"
	"os"
	"path/filepath"
)

// findRepoRoot walks up from the test's working directory to the module that
// holds cmd/ytsnip.
func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; {
		if isRepoRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no ytsnip module above %s", wd)
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	for _, p := range []string{"go.mod", filepath.Join("cmd", "ytsnip", "main.go")} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			return false
		}
	}
	return true
}
