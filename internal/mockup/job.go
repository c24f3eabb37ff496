package mockup

import (
	"fmt"
	"strings"
	"time"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/providers/image"
)

// BatchSize is the number of variations produced per generation.
const BatchSize = 4

// Status enumerates job lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status ends a generation attempt.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job is one independent attempt to produce a single mockup. Result is set
// only when Succeeded, Error only when Failed.
type Job struct {
	ID        string
	Status    Status
	Result    *image.Asset
	Error     string
	Attempt   int
	UpdatedAt time.Time
}

// Input is the frozen parameter set shared by every job of a batch.
type Input struct {
	Source      image.SourceImage
	Category    domain.Category
	Description string
}

func (in Input) validate() error {
	if in.Source.Empty() {
		return domain.ErrEmptySource
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, string(in.Category))
	}
	return nil
}

func (in Input) frozen() Input {
	out := in
	out.Source.Data = append([]byte(nil), in.Source.Data...)
	out.Description = strings.TrimSpace(in.Description)
	return out
}

// Batch groups the four jobs generated from one Input.
type Batch struct {
	ID        string
	Input     Input
	Jobs      []Job
	CreatedAt time.Time
}

// Job looks up a job by id and returns its display index.
func (b Batch) Job(id string) (Job, int, bool) {
	for i, job := range b.Jobs {
		if job.ID == id {
			return job, i, true
		}
	}
	return Job{}, -1, false
}

// Settled reports whether no job is pending.
func (b Batch) Settled() bool {
	for _, job := range b.Jobs {
		if !job.Status.Terminal() {
			return false
		}
	}
	return true
}

// Counts tallies jobs per status.
func (b Batch) Counts() (pending, succeeded, failed int) {
	for _, job := range b.Jobs {
		switch job.Status {
		case StatusPending:
			pending++
		case StatusSucceeded:
			succeeded++
		case StatusFailed:
			failed++
		}
	}
	return pending, succeeded, failed
}

func (b Batch) clone() Batch {
	out := b
	out.Jobs = make([]Job, len(b.Jobs))
	copy(out.Jobs, b.Jobs)
	return out
}

// JobUpdate is emitted whenever a job changes state.
type JobUpdate struct {
	BatchID string
	Index   int
	Job     Job
}
