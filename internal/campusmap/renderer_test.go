package campusmap

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSource parks loads until released so a test can overlap requests
// deterministically.
type blockingSource struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	loads   int
}

func newBlockingSource() *blockingSource {
	return &blockingSource{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (s *blockingSource) LoadPage(ctx context.Context, page int) ([]byte, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	s.started <- struct{}{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
		return []byte{byte(page)}, nil
	}
}

func TestRenderPageSupersedesPrior(t *testing.T) {
	source := newBlockingSource()
	renderer := NewRenderer(source)

	priorErr := make(chan error, 1)
	go func() {
		_, err := renderer.RenderPage(context.Background(), "viewer-1", 1)
		priorErr <- err
	}()
	<-source.started

	// A newer request for the same slot cancels the first one.
	nextDone := make(chan struct{})
	go func() {
		defer close(nextDone)
		data, err := renderer.RenderPage(context.Background(), "viewer-1", 2)
		assert.NoError(t, err)
		assert.Equal(t, []byte{2}, data)
	}()
	<-source.started

	select {
	case err := <-priorErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded render did not return")
	}

	close(source.release)
	<-nextDone
}

func TestRenderPageSlotsAreIndependent(t *testing.T) {
	source := newBlockingSource()
	renderer := NewRenderer(source)

	aErr := make(chan error, 1)
	go func() {
		_, err := renderer.RenderPage(context.Background(), "viewer-a", 1)
		aErr <- err
	}()
	<-source.started

	bErr := make(chan error, 1)
	go func() {
		_, err := renderer.RenderPage(context.Background(), "viewer-b", 1)
		bErr <- err
	}()
	<-source.started

	close(source.release)
	assert.NoError(t, <-aErr)
	assert.NoError(t, <-bErr)
}

func TestRenderPageCallerCancellationSurfaced(t *testing.T) {
	source := newBlockingSource()
	renderer := NewRenderer(source)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := renderer.RenderPage(ctx, "viewer-1", 1)
		errCh <- err
	}()
	<-source.started
	cancel()

	// The caller's own cancellation is not a supersede.
	err := <-errCh
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPageSuccess(t *testing.T) {
	source := newBlockingSource()
	close(source.release)
	renderer := NewRenderer(source)

	data, err := renderer.RenderPage(context.Background(), "viewer-1", 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, data)
}
