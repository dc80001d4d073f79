//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name:         "no command args",
			args:         staticArgs("new-project"),
			wantContains: []string{"accepts 1 arg(s), received 0"},
		},
		{
			name:         "add without videos",
			args:         staticArgs("add-videos", "p.json"),
			wantContains: []string{"requires at least 2 arg(s), only received 1"},
		},
		{
			name:         "search without pattern",
			args:         staticArgs("search", "p.json"),
			wantContains: []string{"requires at least 2 arg(s), only received 1"},
		},
		{
			name:         "unknown flag",
			args:         staticArgs("search", "p.json", "hi", "--wat"),
			wantContains: []string{"unknown flag: --wat"},
		},
		{
			name:         "unknown command",
			args:         staticArgs("download-everything"),
			wantContains: []string{`unknown command "download-everything"`},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_InvalidInput(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name:            "invalid pattern",
			args:            projectArgs("search", "(unclosed"),
			wantContains:    []string{"config: invalid search pattern"},
			wantNotContains: []string{"fetching captions"},
		},
		{
			name:         "bad extractor flag",
			args:         projectArgs("download-clips", "hi", "--extractor", "vlc"),
			wantContains: []string{`tools.extractor must be "ytdlp" or "ffmpeg"`},
		},
		{
			name: "bad config file",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				cfg := filepath.Join(t.TempDir(), "ytsnip.yaml")
				if err := os.WriteFile(cfg, []byte("tuning:\n  gap_marker: \" | \"\n"), 0o644); err != nil {
					t.Fatalf("write config fixture: %v", err)
				}
				return []string{"search", "--config", cfg, "p.json", "hi"}
			},
			wantContains: []string{"gap_marker"},
		},
		{
			name: "config from env",
			args: staticArgs("search", "p.json", "hi"),
			env: map[string]string{
				"YTSNIP_CONFIG": "/does/not/exist.yaml",
			},
			wantContains: []string{"read config /does/not/exist.yaml"},
		},
		{
			name:         "missing project",
			args:         staticArgs("list-videos", "/does/not/exist.json"),
			wantContains: []string{"project file not found"},
		},
		{
			name:         "invalid video id",
			args:         projectArgs("add-videos", "short"),
			wantContains: []string{`invalid video id "short"`},
		},
		{
			name:         "remove unknown video",
			args:         projectArgs("remove-videos", "zzzzzzzzzzz"),
			wantContains: []string{"video not in project: zzzzzzzzzzz"},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

// projectArgs runs cmd against a fresh empty project: cmd <project> rest...
func projectArgs(cmd string, rest ...string) func(t *testing.T, _ string) []string {
	return func(t *testing.T, _ string) []string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "p.json")
		if err := os.WriteFile(p, []byte(`{"videos": []}`), 0o644); err != nil {
			t.Fatalf("write project fixture: %v", err)
		}
		return append([]string{cmd, p}, rest...)
	}
}

func runRobustCases(t *testing.T, repoRoot string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), tc.env)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/ytsnip"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR":      "1",
			"TERM":          "dumb",
			"YTSNIP_CONFIG": "",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
