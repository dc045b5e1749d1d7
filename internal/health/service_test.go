package health

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetReadyConcurrentWithReads(t *testing.T) {
	h := NewHealthHandler(nil)
	assert.False(t, h.isReady.Load())

	// Readiness flips from the startup goroutine while handlers read it.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.SetReady()
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = h.isReady.Load()
		}
	}()
	wg.Wait()

	assert.True(t, h.isReady.Load())
}
