package cli

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// ProgressReporter tracks per-item status for a batch operation, such as
// ingesting a directory of image files.
type ProgressReporter struct {
	mu       sync.Mutex
	out      io.Writer
	statuses map[string]string
	order    []string
	start    time.Time
}

// NewProgressReporter creates a reporter writing to out.
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		out:      out,
		statuses: make(map[string]string),
		start:    time.Now(),
	}
}

// Update sets the status of one item and prints the transition.
func (p *ProgressReporter) Update(item, status string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, seen := p.statuses[item]; !seen {
		p.order = append(p.order, item)
	}
	p.statuses[item] = status

	symbol := "[.]"
	switch status {
	case "done":
		symbol = "[*]"
	case "failed":
		symbol = "[x]"
	case "processing":
		symbol = "[~]"
	}
	fmt.Fprintf(p.out, "%s %s: %s\n", symbol, item, status)
}

// Failed returns the items that ended in a failed status, sorted.
func (p *ProgressReporter) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for item, status := range p.statuses {
		if status == "failed" {
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

// Done prints the batch summary.
func (p *ProgressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	failed := 0
	for _, status := range p.statuses {
		if status == "failed" {
			failed++
		}
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.out, "\n%d item(s), %d failed, in %s\n", len(p.order), failed, elapsed)
}
