// Package pipeline wires discovery, tokenisation, line hashing, hash-tree
// construction, the collision index, aggregation and suppression into the
// single entry point both the CLI and library callers drive a scan through.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/ingo-eichhorst/cpitd/internal/aggregate"
	"github.com/ingo-eichhorst/cpitd/internal/config"
	"github.com/ingo-eichhorst/cpitd/internal/discovery"
	"github.com/ingo-eichhorst/cpitd/internal/hashtree"
	"github.com/ingo-eichhorst/cpitd/internal/index"
	"github.com/ingo-eichhorst/cpitd/internal/linehash"
	"github.com/ingo-eichhorst/cpitd/internal/report"
	"github.com/ingo-eichhorst/cpitd/internal/suppress"
	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

// defaultMinMatchTokens is the floor a hash-tree node's token count must
// clear before two locations sharing its hash are even considered a
// candidate match; this runs well ahead of aggregate's own
// DefaultMinGroupTokens, which applies after level-0 runs have been merged.
const defaultMinMatchTokens = 10

// Driver runs a scan: it owns the shared tokenizer registry so repeated
// scans (e.g. one process handling several `paths` arguments) do not rebuild
// the lexer set each time.
type Driver struct {
	registry *tokenizer.Registry
	verbose  bool
	progress *ScanProgress
}

// New returns a Driver. verbose enables discovery-skip warnings. A progress
// spinner is written to stderr whenever stderr is a terminal, whatever the
// value of verbose.
func New(verbose bool) *Driver {
	return &Driver{
		registry: tokenizer.NewRegistry(),
		verbose:  verbose,
		progress: NewScanProgress(os.Stderr),
	}
}

// Scan discovers files under paths, tokenises and hashes every one that
// survives the min-tokens floor, and returns the aggregated (and, if
// configured, suppression-filtered) clone reports.
func (d *Driver) Scan(cfg config.Config, paths []string) ([]aggregate.CloneReport, error) {
	walker := discovery.NewWalker(d.registry, cfg.IgnorePatterns, cfg.Languages, d.verbose)

	d.progress.EnterDiscovery()
	files, err := walker.Discover(paths)
	if err != nil {
		d.progress.Abort()
		return nil, err
	}
	d.progress.EnterTokenizing()

	ix := index.New()
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			d.warn("skipping %s: %v", file, err)
			continue
		}

		tokens, err := tokenizer.Tokenize(d.registry, source, file, cfg.Normalize)
		if err != nil {
			d.warn("skipping %s: %v", file, err)
			continue
		}
		if len(tokens) < cfg.MinTokens {
			continue
		}

		lineHashes := linehash.HashLines(tokens)
		levels := hashtree.Build(lineHashes)
		ix.AddFile(file, levels)
	}
	d.progress.EnterAggregating()

	matches := ix.FindMatches(defaultMinMatchTokens)
	reports := aggregate.Aggregate(matches, aggregate.DefaultMinGroupTokens)

	if len(cfg.SuppressPatterns) > 0 {
		reports = suppress.Filter(reports, cfg.SuppressPatterns, readSourceText)
	}

	d.progress.Done()
	return reports, nil
}

// ScanAndReport runs Scan and renders the result to w in cfg.OutputFormat.
func (d *Driver) ScanAndReport(cfg config.Config, paths []string, w io.Writer) ([]aggregate.CloneReport, error) {
	reports, err := d.Scan(cfg, paths)
	if err != nil {
		return nil, err
	}

	switch cfg.OutputFormat {
	case config.FormatJSON:
		err = report.WriteJSON(w, reports)
	default:
		err = report.WriteHuman(w, reports)
	}
	return reports, err
}

func (d *Driver) warn(format string, args ...interface{}) {
	if d.verbose {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	}
}

// readSourceText reads path as text for the suppression filter's pattern
// matching pass. A read failure reports the file absent rather than failing
// the whole scan: a source line that cannot be recovered simply never
// matches a suppression pattern.
func readSourceText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
