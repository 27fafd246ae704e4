package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	var count int64
	var wg sync.WaitGroup

	for i := 0; i < 40; i++ {
		wg.Add(1)
		err := p.SubmitWait(func() {
			defer wg.Done()
			atomic.AddInt64(&count, 1)
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, int64(40), atomic.LoadInt64(&count))
}

func TestSubmitReturnsErrPoolFull(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{})

	// Occupy the single worker.
	require.NoError(t, p.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	// Fill the buffered queue (2× worker count), then expect rejection.
	sawFull := false
	for i := 0; i < 10; i++ {
		if err := p.Submit(func() { <-release }); errors.Is(err, ErrPoolFull) {
			sawFull = true
			break
		}
	}
	close(release)
	assert.True(t, sawFull, "expected ErrPoolFull once the queue saturated")
}

func TestRunBlocksUntilTaskCompletes(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	// No synchronization around result on purpose: Run must establish
	// the happens-before edge itself.
	var result int
	require.NoError(t, p.Run(func() {
		time.Sleep(10 * time.Millisecond)
		result = 42
	}))
	assert.Equal(t, 42, result)

	p2 := New(2)
	p2.Shutdown()
	assert.ErrorIs(t, p2.Run(func() {}), ErrPoolClosed)
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(2)
	p.Shutdown()

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)

	err = p.SubmitWait(func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestShutdownWaitsForInFlight(t *testing.T) {
	p := New(2)

	var done int64
	for i := 0; i < 4; i++ {
		require.NoError(t, p.SubmitWait(func() {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&done, 1)
		}))
	}

	p.Shutdown()
	assert.Equal(t, int64(4), atomic.LoadInt64(&done))
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	p := New(1)
	defer p.Shutdown()

	require.NoError(t, p.SubmitWait(func() { panic("boom") }))

	ran := make(chan struct{})
	require.NoError(t, p.SubmitWait(func() { close(ran) }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker died after a panicking task")
	}
}
