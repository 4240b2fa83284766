package tokenizer

import (
	"path/filepath"
	"strings"
)

// LanguageInfo names a lexer the way spec.md §6's `languages` config field
// matches against: a canonical name plus any aliases, all compared
// case-insensitively.
type LanguageInfo struct {
	Name    string
	Aliases []string
}

// Matches reports whether name equals this language's name or any of its
// aliases, compared case-insensitively.
func (li LanguageInfo) Matches(name string) bool {
	if strings.EqualFold(li.Name, name) {
		return true
	}
	for _, a := range li.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// registryEntry pairs a Lexer with the language identity discovery/config
// filtering need.
type registryEntry struct {
	lexer Lexer
	lang  LanguageInfo
}

// Registry maps file extensions to Lexer implementations. It is the
// tokeniser's "external multi-language lexer selected by filename
// extension" (spec.md §4.1); nothing about the core's algorithm depends on
// which concrete lexers are registered.
type Registry struct {
	byExt map[string]registryEntry
}

// NewRegistry builds the default registry: tree-sitter grammars for the
// languages this module ships bindings for, and a configurable generic
// scanner for everything else spec.md calls "any language a general-purpose
// lexer recognises".
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]registryEntry)}

	for _, ts := range treeSitterLexers() {
		for _, ext := range ts.extensions {
			r.byExt[ext] = registryEntry{lexer: ts.lexer, lang: ts.lang}
		}
	}

	for _, g := range genericPresets() {
		for _, ext := range g.extensions {
			r.byExt[ext] = registryEntry{lexer: newGenericLexer(g.syntax), lang: g.lang}
		}
	}

	return r
}

// Select returns the Lexer registered for filename's extension. source is
// accepted for symmetry with a content-guessing fallback but is unused: the
// core never guesses a language from content, only from the filename hint
// (spec.md §4.1 treats content-guessing as the no-hint case of an external
// lexer, not a core responsibility).
func (r *Registry) Select(filename string, source []byte) (Lexer, bool) {
	_ = source
	ext := strings.ToLower(filepath.Ext(filename))
	entry, ok := r.byExt[ext]
	if !ok {
		return nil, false
	}
	return entry.lexer, true
}

// Language returns the LanguageInfo registered for filename's extension, for
// config's `languages` allow-list filtering.
func (r *Registry) Language(filename string) (LanguageInfo, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	entry, ok := r.byExt[ext]
	if !ok {
		return LanguageInfo{}, false
	}
	return entry.lang, true
}

// Extensions returns every extension the registry recognizes, in no
// particular order. File discovery does not use it; it checks each file with
// Language.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
