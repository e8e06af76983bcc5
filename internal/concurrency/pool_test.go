package concurrency_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ervinbosenbacher/ironsearch/internal/concurrency"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := concurrency.NewPool(4, 1)
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	const n = 50
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		ok := p.Run(func() {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
		require.True(t, ok)
	}
	wg.Wait()
	p.Stop(false)

	assert.Len(t, order, n)
}

func TestPoolStopFinishDrainsQueue(t *testing.T) {
	p := concurrency.NewPool(1, 0)
	var ran atomic.Int32
	const n = 20
	for i := 0; i < n; i++ {
		p.Run(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}
	p.Stop(false)
	assert.EqualValues(t, n, ran.Load())
}

func TestPoolRunFalseAfterStop(t *testing.T) {
	p := concurrency.NewPool(2, 0)
	p.Stop(false)
	assert.False(t, p.Run(func() {}))
}

func TestPoolTaskPanicDoesNotKillWorker(t *testing.T) {
	p := concurrency.NewPool(1, 0)
	var caught atomic.Int32
	p.OnTaskError(func(recovered any) { caught.Add(1) })

	done := make(chan struct{})
	p.Run(func() { panic("boom") })
	p.Run(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second task never ran after first panicked")
	}
	p.Stop(false)
	assert.EqualValues(t, 1, caught.Load())
}

func TestMaxThreadsDeltaSaturates(t *testing.T) {
	p := concurrency.NewPool(1, 0)
	p.MaxThreadsDelta(-100)
	assert.Equal(t, 0, p.MaxThreads())
}
