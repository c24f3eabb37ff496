package mockup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
	"mockupstudio/internal/providers/image"
)

const failedMarker = "failed"

// Option customizes a Manager.
type Option func(*Manager)

// WithObserver registers a callback invoked after every job state change.
// Callbacks run one at a time outside the manager lock, on the goroutine that
// caused the change. An update is delivered only while it still describes the
// live job, so a job's updates arrive in order and updates for a discarded
// batch are dropped. Callbacks may read the manager but must not call
// StartBatch, RedoJob or Clear.
func WithObserver(fn func(JobUpdate)) Option {
	return func(m *Manager) { m.observer = fn }
}

// WithIDGenerator overrides how batch and job ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithClock overrides the time source used for timestamps.
func WithClock(fn func() time.Time) Option {
	return func(m *Manager) { m.now = fn }
}

// Manager owns the current generation batch and drives each job through
// pending -> succeeded|failed against an image generator.
type Manager struct {
	gen      image.Generator
	logger   infra.Logger
	observer func(JobUpdate)
	newID    func() string
	now      func() time.Time

	mu      sync.Mutex
	current *batchState

	// notifyMu serializes observer delivery. It is never acquired while mu
	// is held.
	notifyMu sync.Mutex
}

type batchState struct {
	batch Batch
	// done closes once the initial fan-out has settled.
	done chan struct{}
	// changed is closed and replaced on every job mutation.
	changed chan struct{}
}

func (s *batchState) signal() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func NewManager(gen image.Generator, logger infra.Logger, opts ...Option) *Manager {
	m := &Manager{
		gen:    gen,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CheckConfiguration reports ErrMissingCredentials when the generator cannot
// be invoked at all.
func (m *Manager) CheckConfiguration() error {
	if m.gen == nil || !m.gen.HasCredentials() {
		return domain.ErrMissingCredentials
	}
	return nil
}

// StartBatch replaces the current batch with a new one of BatchSize pending
// jobs and fires one generator call per job. It returns without waiting for
// the calls; per-job failures never surface here.
func (m *Manager) StartBatch(ctx context.Context, in Input) (*Handle, error) {
	if err := m.CheckConfiguration(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	in = in.frozen()

	now := m.now()
	state := &batchState{
		batch: Batch{
			ID:        m.newID(),
			Input:     in,
			Jobs:      make([]Job, BatchSize),
			CreatedAt: now,
		},
		done:    make(chan struct{}),
		changed: make(chan struct{}),
	}
	for i := range state.batch.Jobs {
		state.batch.Jobs[i] = Job{ID: m.newID(), Status: StatusPending, Attempt: 1, UpdatedAt: now}
	}
	batchID := state.batch.ID
	jobs := state.batch.clone().Jobs

	m.mu.Lock()
	previous := m.current
	m.current = state
	m.mu.Unlock()

	if previous != nil {
		m.logger.Debug().Str("batch_id", previous.batch.ID).Msg("mockup: previous batch discarded")
	}
	m.logger.Info().
		Str("batch_id", batchID).
		Str("category", in.Category.String()).
		Str("generator", m.gen.Name()).
		Msg("mockup: batch started")

	for i, job := range jobs {
		m.notify(JobUpdate{BatchID: batchID, Index: i, Job: job})
	}

	callCtx := context.WithoutCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		go func(jobID string, attempt int) {
			defer wg.Done()
			m.run(callCtx, batchID, in, jobID, attempt)
		}(job.ID, job.Attempt)
	}
	go func() {
		wg.Wait()
		close(state.done)
		m.logger.Debug().Str("batch_id", batchID).Msg("mockup: initial generation settled")
	}()

	return &Handle{m: m, id: batchID, done: state.done}, nil
}

// RedoJob resets one settled job to pending and issues a fresh call with the
// batch's frozen input. Sibling jobs are untouched. A job that is still
// pending is rejected with ErrJobPending.
func (m *Manager) RedoJob(ctx context.Context, batchID, jobID string) error {
	m.mu.Lock()
	st := m.current
	if st == nil || st.batch.ID != batchID {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchID)
	}
	_, idx, ok := st.batch.Job(jobID)
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	job := &st.batch.Jobs[idx]
	if job.Status == StatusPending {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrJobPending, jobID)
	}
	job.Status = StatusPending
	job.Result = nil
	job.Error = ""
	job.Attempt++
	job.UpdatedAt = m.now()
	update := JobUpdate{BatchID: batchID, Index: idx, Job: *job}
	attempt := job.Attempt
	in := st.batch.Input
	st.signal()
	m.mu.Unlock()

	m.logger.Info().
		Str("batch_id", batchID).
		Str("job_id", jobID).
		Int("attempt", attempt).
		Msg("mockup: job redo requested")
	m.notify(update)

	go m.run(context.WithoutCancel(ctx), batchID, in, jobID, attempt)
	return nil
}

// Clear discards the current batch. Completions still in flight for it are
// dropped when they arrive.
func (m *Manager) Clear() {
	m.mu.Lock()
	st := m.current
	m.current = nil
	if st != nil {
		st.signal()
	}
	m.mu.Unlock()

	if st != nil {
		m.logger.Debug().Str("batch_id", st.batch.ID).Msg("mockup: batch cleared")
	}
}

// Current returns a snapshot of the current batch.
func (m *Manager) Current() (Batch, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Batch{}, false
	}
	return m.current.batch.clone(), true
}

// Generating reports whether the current batch's initial calls are still in
// flight.
func (m *Manager) Generating() bool {
	m.mu.Lock()
	st := m.current
	m.mu.Unlock()
	if st == nil {
		return false
	}
	select {
	case <-st.done:
		return false
	default:
		return true
	}
}

func (m *Manager) run(ctx context.Context, batchID string, in Input, jobID string, attempt int) {
	req := image.GenerateRequest{
		Source:      in.Source,
		Category:    in.Category.String(),
		Description: in.Description,
		Prompt:      image.BuildMockupPrompt(in.Category.String(), in.Description),
		RequestID:   fmt.Sprintf("%s/%d", jobID, attempt),
	}
	asset, err := m.generate(ctx, req)
	if err == nil && (asset == nil || len(asset.Data) == 0) {
		err = fmt.Errorf("%w: empty image", domain.ErrProviderFailure)
	}
	m.complete(batchID, jobID, attempt, asset, err)
}

func (m *Manager) generate(ctx context.Context, req image.GenerateRequest) (asset *image.Asset, err error) {
	defer func() {
		if r := recover(); r != nil {
			asset = nil
			err = fmt.Errorf("%w: generator panic: %v", domain.ErrProviderFailure, r)
		}
	}()
	return m.gen.Generate(ctx, req)
}

// complete applies a call result to its job if the job still belongs to the
// current batch and is waiting on this very attempt.
func (m *Manager) complete(batchID, jobID string, attempt int, asset *image.Asset, callErr error) {
	m.mu.Lock()
	st := m.current
	if st == nil || st.batch.ID != batchID {
		m.mu.Unlock()
		m.logger.Debug().Str("batch_id", batchID).Str("job_id", jobID).Msg("mockup: dropping result for discarded batch")
		return
	}
	_, idx, ok := st.batch.Job(jobID)
	if !ok {
		m.mu.Unlock()
		return
	}
	job := &st.batch.Jobs[idx]
	if job.Attempt != attempt || job.Status != StatusPending {
		m.mu.Unlock()
		m.logger.Debug().Str("job_id", jobID).Int("attempt", attempt).Msg("mockup: dropping superseded result")
		return
	}
	if callErr != nil {
		job.Status = StatusFailed
		job.Result = nil
		job.Error = failureMessage(callErr)
	} else {
		job.Status = StatusSucceeded
		job.Result = asset
		job.Error = ""
	}
	job.UpdatedAt = m.now()
	update := JobUpdate{BatchID: batchID, Index: idx, Job: *job}
	st.signal()
	m.mu.Unlock()

	if callErr != nil {
		m.logger.Warn().Err(callErr).Str("batch_id", batchID).Str("job_id", jobID).Int("attempt", attempt).Msg("mockup: job failed")
	} else {
		m.logger.Info().Str("batch_id", batchID).Str("job_id", jobID).Int("attempt", attempt).Msg("mockup: job succeeded")
	}
	m.notify(update)
}

func (m *Manager) notify(update JobUpdate) {
	if m.observer == nil {
		return
	}
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	if !m.live(update) {
		m.logger.Debug().
			Str("batch_id", update.BatchID).
			Str("job_id", update.Job.ID).
			Int("attempt", update.Job.Attempt).
			Str("status", string(update.Job.Status)).
			Msg("mockup: skipping outdated update")
		return
	}
	m.observer(update)
}

// live reports whether update still matches the job it was taken from.
func (m *Manager) live(update JobUpdate) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.current
	if st == nil || st.batch.ID != update.BatchID {
		return false
	}
	if update.Index < 0 || update.Index >= len(st.batch.Jobs) {
		return false
	}
	job := st.batch.Jobs[update.Index]
	return job.ID == update.Job.ID && job.Attempt == update.Job.Attempt && job.Status == update.Job.Status
}

func failureMessage(err error) string {
	if err == nil {
		return failedMarker
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return failedMarker
}
