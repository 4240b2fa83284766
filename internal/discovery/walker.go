// Package discovery finds the files a scan should analyse: walking
// filesystem roots, applying .gitignore and generated-file exclusions, and
// filtering by the caller's ignore-glob and language allow-list.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

// skipDirs lists directory names that are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
}

// Walker discovers files eligible for tokenisation under one or more
// filesystem roots.
type Walker struct {
	registry       *tokenizer.Registry
	ignorePatterns []string
	languages      []string
	verbose        bool
}

// NewWalker builds a Walker. ignorePatterns are shell-style globs matched
// against each walked file's slash-normalized path relative to its root (a
// file given directly as a root is matched against that path as given); languages, if
// non-empty, restricts results to files whose registered language name or
// alias matches one of these entries (case-insensitive). verbose turns on
// stderr notices for skipped files.
func NewWalker(registry *tokenizer.Registry, ignorePatterns, languages []string, verbose bool) *Walker {
	return &Walker{registry: registry, ignorePatterns: ignorePatterns, languages: languages, verbose: verbose}
}

// Discover walks every root in paths (each a file or a directory) and
// returns the path of every file that survives extension recognition,
// .gitignore exclusion, the ignore-glob list, the language allow-list, and
// the generated-file check. A file given directly as a root is returned as
// given; a file found under a directory root is returned as that root joined
// with its relative path, so paths are absolute only when the roots are.
// Results are deduplicated by path string and returned in the order first
// encountered.
func (w *Walker) Discover(paths []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}

		if !info.IsDir() {
			if w.accept(root, root) && !seen[root] {
				seen[root] = true
				out = append(out, root)
			}
			continue
		}

		gi := w.loadGitignore(root)

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.warn("skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if d.Type()&fs.ModeSymlink != 0 {
				w.warn("skipping symlink %s", path)
				return nil
			}

			name := d.Name()
			if d.IsDir() {
				if name != "." && strings.HasPrefix(name, ".") {
					return fs.SkipDir
				}
				if skipDirs[name] {
					return fs.SkipDir
				}
				return nil
			}

			relPath, relErr := filepath.Rel(root, path)
			if relErr != nil {
				w.warn("skipping %s: %v", path, relErr)
				return nil
			}
			relPath = filepath.ToSlash(relPath)

			if gi != nil && gi.MatchesPath(relPath) {
				return nil
			}
			if isVendorPath(relPath) {
				return nil
			}

			if w.accept(path, relPath) && !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return out, nil
}

// accept applies the extension/ignore-glob/language/generated-file filters
// shared by both the single-file and directory-walk code paths.
func (w *Walker) accept(absPath, relOrAbsPath string) bool {
	lang, ok := w.registry.Language(absPath)
	if !ok {
		w.warn("skipping %s: no lexer for extension", absPath)
		return false
	}

	for _, pattern := range w.ignorePatterns {
		if ok, _ := doublestar.Match(pattern, relOrAbsPath); ok {
			return false
		}
	}

	if len(w.languages) > 0 && !languageAllowed(lang, w.languages) {
		return false
	}

	if strings.EqualFold(lang.Name, "go") {
		generated, err := isGeneratedFile(absPath)
		if err != nil {
			w.warn("skipping %s: %v", absPath, err)
			return false
		}
		if generated {
			return false
		}
	}

	return true
}

func languageAllowed(lang tokenizer.LanguageInfo, allow []string) bool {
	for _, a := range allow {
		if lang.Matches(a) {
			return true
		}
	}
	return false
}

func (w *Walker) loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		w.warn("failed to parse %s: %v", path, err)
		return nil
	}
	return gi
}

func (w *Walker) warn(format string, args ...interface{}) {
	if w.verbose {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	}
}

func isVendorPath(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if part == "vendor" {
			return true
		}
	}
	return false
}
