package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscover_FindsRecognizedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, "README.md", "# hi\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "main.go" {
		t.Fatalf("got %v, want only main.go", got)
	}
}

func TestDiscover_SkipsVendorAndDotDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor/lib/x.go", "package lib\n")
	writeFile(t, dir, ".hidden/y.go", "package hidden\n")
	writeFile(t, dir, "real.go", "package real\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "real.go" {
		t.Fatalf("got %v, want only real.go", got)
	}
}

func TestDiscover_AppliesIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "a.gen.go", "package a\n")

	w := NewWalker(tokenizer.NewRegistry(), []string{"*.gen.go"}, nil, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "a.go" {
		t.Fatalf("got %v, want only a.go", got)
	}
}

func TestDiscover_AppliesLanguageAllowList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.py", "x = 1\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, []string{"python"}, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "b.py" {
		t.Fatalf("got %v, want only b.py", got)
	}
}

func TestDiscover_SkipsGitignoredFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "ignored.go\n")
	writeFile(t, dir, "ignored.go", "package a\n")
	writeFile(t, dir, "kept.go", "package a\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "kept.go" {
		t.Fatalf("got %v, want only kept.go", got)
	}
}

func TestDiscover_SkipsGeneratedGoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gen.go", "// Code generated by foo. DO NOT EDIT.\npackage a\n")
	writeFile(t, dir, "hand.go", "package a\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "hand.go" {
		t.Fatalf("got %v, want only hand.go", got)
	}
}

func TestDiscover_AcceptsExplicitFileArgument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "single.go", "package a\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want [single.go]", got)
	}
}

func TestDiscover_MultipleRootsDeduplicated(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "only.go", "package a\n")

	w := NewWalker(tokenizer.NewRegistry(), nil, nil, false)
	got, err := w.Discover([]string{dir, path})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	if len(got) != 1 {
		t.Fatalf("got %v, want deduplicated single entry", got)
	}
}
