package mockup

import (
	"context"
	"fmt"

	"mockupstudio/internal/domain"
)

// Handle is the caller's view of a batch returned by StartBatch.
type Handle struct {
	m    *Manager
	id   string
	done <-chan struct{}
}

func (h *Handle) ID() string {
	return h.id
}

// Done is closed once the batch's initial calls have all settled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the initial calls settle or ctx ends.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Batch returns a live snapshot. ok is false once the batch was cleared or
// replaced.
func (h *Handle) Batch() (Batch, bool) {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	st := h.m.current
	if st == nil || st.batch.ID != h.id {
		return Batch{}, false
	}
	return st.batch.clone(), true
}

// Jobs returns the live job list in display order.
func (h *Handle) Jobs() ([]Job, bool) {
	b, ok := h.Batch()
	if !ok {
		return nil, false
	}
	return b.Jobs, true
}

// WaitSettled blocks until no job of the batch is pending, including jobs
// re-issued through RedoJob.
func (h *Handle) WaitSettled(ctx context.Context) (Batch, error) {
	for {
		h.m.mu.Lock()
		st := h.m.current
		if st == nil || st.batch.ID != h.id {
			h.m.mu.Unlock()
			return Batch{}, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, h.id)
		}
		if st.batch.Settled() {
			b := st.batch.clone()
			h.m.mu.Unlock()
			return b, nil
		}
		changed := st.changed
		h.m.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return Batch{}, ctx.Err()
		}
	}
}
