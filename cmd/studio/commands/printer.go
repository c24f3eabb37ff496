package commands

import (
	"fmt"
	"io"
	"sync"

	"mockupstudio/internal/mockup"
)

// printer renders job cards as lines, one per state change, as results
// arrive.
type printer struct {
	mu      sync.Mutex
	out     io.Writer
	manager *mockup.Manager
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) observe(u mockup.JobUpdate) {
	if p.manager != nil {
		if b, ok := p.manager.Current(); !ok || b.ID != u.BatchID {
			return
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, formatJob(u.Index, u.Job))
}

func (p *printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) batch(b mockup.Batch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending, succeeded, failed := b.Counts()
	fmt.Fprintf(p.out, "batch %s  %s", b.ID, b.Input.Category)
	if b.Input.Description != "" {
		fmt.Fprintf(p.out, "  %q", b.Input.Description)
	}
	fmt.Fprintf(p.out, "\n  %d succeeded, %d failed, %d generating\n", succeeded, failed, pending)
	for i, job := range b.Jobs {
		fmt.Fprintln(p.out, "  "+formatJob(i, job))
	}
}

func formatJob(index int, job mockup.Job) string {
	prefix := fmt.Sprintf("[%d/%d]", index+1, mockup.BatchSize)
	switch job.Status {
	case mockup.StatusSucceeded:
		mime, size := "", 0
		if job.Result != nil {
			mime, size = job.Result.MIME, len(job.Result.Data)
		}
		return fmt.Sprintf("%s ready      attempt %d  %s  %.1f KB", prefix, job.Attempt, mime, float64(size)/1024)
	case mockup.StatusFailed:
		return fmt.Sprintf("%s failed     attempt %d  %s (redo %d to retry)", prefix, job.Attempt, job.Error, index+1)
	default:
		return fmt.Sprintf("%s generating attempt %d", prefix, job.Attempt)
	}
}
