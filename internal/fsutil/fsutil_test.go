package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_CreatesParentsAndReplaces(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "a", "b", "p.json")

	if err := WriteFileAtomic(dest, []byte("one"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(dest, []byte("two"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "two" {
		t.Fatalf("content = %q", b)
	}

	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(filepath.Join(dir, "missing")) {
		t.Fatalf("missing file reported as existing")
	}
	p := filepath.Join(dir, "here")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(p) {
		t.Fatalf("existing file reported as missing")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"nice day", "nice_day"},
		{"(as always)? have a nice day", "_as_always___have_a_nice_day"},
		{"hello|hi", "hello_hi"},
		{"snake_case-ok", "snake_case-ok"},
		{"", "untitled"},
		{"café", "caf_"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	long := SanitizeName(string(make([]byte, 300)))
	if len(long) != maxNameLen {
		t.Fatalf("long name not capped: %d", len(long))
	}
}
