// Package config loads and merges cpitd's configuration: compiled-in
// defaults, an optional `[tool.cpitd]` section of a pyproject.toml-style
// TOML file, and CLI flag overrides, in that precedence order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

// OutputFormat selects how reports are rendered.
type OutputFormat string

const (
	FormatHuman OutputFormat = "human"
	FormatJSON  OutputFormat = "json"
)

// Config is the fully resolved configuration the driver runs with.
type Config struct {
	MinTokens        int
	Normalize        tokenizer.NormalizationLevel
	OutputFormat     OutputFormat
	IgnorePatterns   []string
	Languages        []string
	SuppressPatterns []string
}

// Default returns the compiled-in defaults.
func Default() Config {
	return Config{
		MinTokens:        50,
		Normalize:        tokenizer.Exact,
		OutputFormat:     FormatHuman,
		IgnorePatterns:   nil,
		Languages:        nil,
		SuppressPatterns: nil,
	}
}

// ConfigFileError wraps any failure reading or validating the TOML config
// file: malformed syntax, an unknown key, a wrong-typed value, or an
// out-of-range enum. The host surfaces this as a non-zero configuration-
// error exit; the core never sees it.
type ConfigFileError struct {
	Path string
	Err  error
}

func (e *ConfigFileError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *ConfigFileError) Unwrap() error { return e.Err }

// FileSection mirrors `[tool.cpitd]`'s key names exactly (dashed, not
// camelCase) via toml struct tags. Pointer/nil-slice fields distinguish an
// unset key (nil) from an explicit empty value.
type FileSection struct {
	MinTokens *int     `toml:"min-tokens"`
	Normalize *int     `toml:"normalize"`
	Format    *string  `toml:"format"`
	Ignore    []string `toml:"ignore"`
	Languages []string `toml:"languages"`
}

type fileDoc struct {
	Tool struct {
		Cpitd FileSection `toml:"cpitd"`
	} `toml:"tool"`
}

// LoadFile reads `[tool.cpitd]` from path. A missing file is not an error:
// it returns a zero-value FileSection so callers can merge unconditionally.
func LoadFile(path string) (*FileSection, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &FileSection{}, nil
	}
	if err != nil {
		return nil, &ConfigFileError{Path: path, Err: err}
	}

	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()

	var doc fileDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, &ConfigFileError{Path: path, Err: err}
	}

	sec := doc.Tool.Cpitd
	if sec.Normalize != nil && (*sec.Normalize < 0 || *sec.Normalize > 2) {
		return nil, &ConfigFileError{Path: path, Err: fmt.Errorf("normalize must be 0, 1 or 2, got %d", *sec.Normalize)}
	}
	if sec.Format != nil && *sec.Format != "human" && *sec.Format != "json" {
		return nil, &ConfigFileError{Path: path, Err: fmt.Errorf("format must be \"human\" or \"json\", got %q", *sec.Format)}
	}

	return &sec, nil
}

// FindConfigFile looks for pyproject.toml in dir, the conventional location
// for a `[tool.cpitd]` section.
func FindConfigFile(dir string) string {
	p := filepath.Join(dir, "pyproject.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Overrides holds the CLI-side values, each nil/empty unless the user
// explicitly passed the corresponding flag (cmd.Flags().Changed(...) in the
// CLI layer is what decides that, not this package).
type Overrides struct {
	MinTokens *int
	Normalize *tokenizer.NormalizationLevel
	Format    *OutputFormat
	Ignore    []string
	Languages []string
	Suppress  []string
}

// Build merges defaults, file config and CLI overrides: scalars follow
// "CLI overrides file overrides default"; list fields concatenate with
// file values preceding CLI values.
func Build(file *FileSection, cli Overrides) Config {
	cfg := Default()

	if file != nil {
		if file.MinTokens != nil {
			cfg.MinTokens = *file.MinTokens
		}
		if file.Normalize != nil {
			cfg.Normalize = tokenizer.NormalizationLevel(*file.Normalize)
		}
		if file.Format != nil {
			cfg.OutputFormat = OutputFormat(*file.Format)
		}
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, file.Ignore...)
		cfg.Languages = append(cfg.Languages, file.Languages...)
	}

	if cli.MinTokens != nil {
		cfg.MinTokens = *cli.MinTokens
	}
	if cli.Normalize != nil {
		cfg.Normalize = *cli.Normalize
	}
	if cli.Format != nil {
		cfg.OutputFormat = *cli.Format
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, cli.Ignore...)
	cfg.Languages = append(cfg.Languages, cli.Languages...)
	cfg.SuppressPatterns = append(cfg.SuppressPatterns, cli.Suppress...)

	return cfg
}
