package pipeline

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// ScanProgress reports the stage a Driver.Scan is in via an animated spinner
// on stderr. It is automatically suppressed when stderr is not a TTY (piped
// output, CI), and knows cpitd's own scan stages rather than taking
// arbitrary caller-supplied messages.
type ScanProgress struct {
	mu      sync.Mutex
	frames  []string
	current int
	message string
	active  bool
	isTTY   bool
	writer  *os.File
	ticker  *time.Ticker
	done    chan struct{}
}

// NewScanProgress creates a ScanProgress that writes to the given file
// (typically os.Stderr).
func NewScanProgress(w *os.File) *ScanProgress {
	return &ScanProgress{
		frames: []string{"|", "/", "-", "\\"},
		writer: w,
		isTTY:  isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()),
		done:   make(chan struct{}),
	}
}

// EnterDiscovery starts the spinner for the file-discovery stage.
func (p *ScanProgress) EnterDiscovery() { p.start("discovering files") }

// EnterTokenizing advances the spinner to the tokenising/hashing stage.
func (p *ScanProgress) EnterTokenizing() { p.update("tokenising files") }

// EnterAggregating advances the spinner to the matching/aggregation stage.
func (p *ScanProgress) EnterAggregating() { p.update("matching and aggregating") }

// Done stops the spinner, printing a completion message.
func (p *ScanProgress) Done() { p.stop("scan complete") }

// Abort stops the spinner without a completion message, used when Scan
// returns early on a discovery error.
func (p *ScanProgress) Abort() { p.stop("") }

// start begins displaying the spinner with the given message. If the writer
// is not a TTY, start is a no-op.
func (p *ScanProgress) start(message string) {
	if !p.isTTY {
		return
	}

	p.mu.Lock()
	p.active = true
	p.message = message
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	const spinnerInterval = 100 * time.Millisecond
	p.ticker = time.NewTicker(spinnerInterval)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-p.ticker.C:
				p.mu.Lock()
				if !p.active {
					p.mu.Unlock()
					return
				}
				frame := p.frames[p.current%len(p.frames)]
				msg := p.message
				p.current++
				p.mu.Unlock()
				fmt.Fprintf(p.writer, "\r%s %s", frame, msg)
			}
		}
	}()
}

// update changes the spinner message. The next tick displays the new message.
func (p *ScanProgress) update(message string) {
	p.mu.Lock()
	p.message = message
	p.mu.Unlock()
}

// stop halts the spinner and optionally prints a final message. If the
// writer is not a TTY, stop is a no-op.
func (p *ScanProgress) stop(finalMessage string) {
	if !p.isTTY {
		return
	}

	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	p.mu.Unlock()

	if p.ticker != nil {
		p.ticker.Stop()
	}
	close(p.done)

	if finalMessage != "" {
		fmt.Fprintf(p.writer, "\r%s\n", finalMessage)
	} else {
		fmt.Fprintf(p.writer, "\r\033[K")
	}
}
