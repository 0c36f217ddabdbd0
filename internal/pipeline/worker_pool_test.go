package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ausjobs/internal/extract"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	pool := NewWorkerPool(2, 4)
	ctx := context.Background()
	results := pool.Run(ctx)

	for i := 0; i < 5; i++ {
		ok := pool.Submit(ctx, func(context.Context) (extract.Draft, error) {
			return extract.Draft{Title: "Storeperson"}, nil
		})
		require.True(t, ok)
	}
	pool.Close()

	n := 0
	for out := range results {
		require.NoError(t, out.Err)
		assert.Equal(t, "Storeperson", out.Draft.Title)
		n++
	}
	assert.Equal(t, 5, n)
}

func TestWorkerPoolSubmitDoesNotBlockAfterCancel(t *testing.T) {
	// One worker, tiny queue: once the context is cancelled the queue
	// can never drain, so Submit has to bail out instead of wedging
	// the producer.
	pool := NewWorkerPool(1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	results := pool.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		rejected := false
		for i := 0; i < 10; i++ {
			if !pool.Submit(ctx, func(context.Context) (extract.Draft, error) {
				return extract.Draft{}, nil
			}) {
				rejected = true
			}
		}
		assert.True(t, rejected)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked after cancellation")
	}

	pool.Close()
	for range results {
	}
}
