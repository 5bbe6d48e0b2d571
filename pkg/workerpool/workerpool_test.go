package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReturnsResult(t *testing.T) {
	wp := NewWorkerPool(2, 4)
	defer wp.Close()

	resCh := make(chan Result, 1)
	require.NoError(t, wp.Submit(context.Background(), Task{
		Fn:      func() (any, error) { return 42, nil },
		ResultC: resCh,
	}))
	res := <-resCh
	assert.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
}

func TestPanicBecomesError(t *testing.T) {
	wp := NewWorkerPool(1, 1)
	defer wp.Close()

	resCh := make(chan Result, 1)
	require.NoError(t, wp.Submit(context.Background(), Task{
		Fn:      func() (any, error) { panic("boom") },
		ResultC: resCh,
	}))
	res := <-resCh
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestCloseDrainsQueue(t *testing.T) {
	wp := NewWorkerPool(2, 16)
	var done int32
	for i := 0; i < 10; i++ {
		require.NoError(t, wp.Submit(context.Background(), Task{Fn: func() (any, error) {
			atomic.AddInt32(&done, 1)
			return nil, nil
		}}))
	}
	wp.Close()
	assert.Equal(t, int32(10), atomic.LoadInt32(&done))

	err := wp.Submit(context.Background(), Task{Fn: func() (any, error) { return nil, nil }})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestSubmitHonoursContext(t *testing.T) {
	wp := NewWorkerPool(1, 0)
	defer wp.Close()

	block := make(chan struct{})
	require.NoError(t, wp.Submit(context.Background(), Task{Fn: func() (any, error) {
		<-block
		return nil, nil
	}}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := wp.Submit(ctx, Task{Fn: func() (any, error) { return nil, nil }})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}
