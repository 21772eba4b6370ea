package campusmap

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned to a render caller whose request was cancelled
// by a newer request for the same viewer slot. Callers treat it as a quiet
// no-op, not a failure.
var ErrSuperseded = errors.New("render superseded by a newer request")

// PageSource is the document fetch the renderer serializes.
type PageSource interface {
	LoadPage(ctx context.Context, page int) ([]byte, error)
}

type inflight struct {
	cancel context.CancelFunc
}

// Renderer serializes page loads per viewer slot. A new request for a slot
// first cancels the prior in-flight one; the prior caller's
// cancellation-originated failure is reported as ErrSuperseded and must not
// surface as an error. Loads for different slots do not affect each other.
type Renderer struct {
	source PageSource

	mu       sync.Mutex
	inFlight map[string]*inflight
}

// NewRenderer creates a renderer over the given page source.
func NewRenderer(source PageSource) *Renderer {
	return &Renderer{
		source:   source,
		inFlight: make(map[string]*inflight),
	}
}

// RenderPage loads one page for a viewer slot, cancelling any prior load
// still running for that slot.
func (r *Renderer) RenderPage(ctx context.Context, slot string, page int) ([]byte, error) {
	loadCtx, cancel := context.WithCancel(ctx)
	mine := &inflight{cancel: cancel}

	r.mu.Lock()
	if prior, ok := r.inFlight[slot]; ok {
		prior.cancel()
	}
	r.inFlight[slot] = mine
	r.mu.Unlock()

	data, err := r.source.LoadPage(loadCtx, page)

	r.mu.Lock()
	// Clear the slot only if it is still ours; a newer request may have
	// replaced the entry already.
	if r.inFlight[slot] == mine {
		delete(r.inFlight, slot)
	}
	r.mu.Unlock()
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	return data, nil
}
