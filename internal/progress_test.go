package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressIsMonotonic(t *testing.T) {
	reported := []int{}
	progress := NewProgress(func(percent int) { reported = append(reported, percent) }, 20, 40, 40)

	progress.Advance(0, 0.5)
	progress.Advance(0, 0.25)
	progress.Advance(0, 1)
	progress.Advance(2, 0.5)
	progress.Advance(1, 2)
	progress.Complete()

	assert.Equal(t, []int{10, 20, 40, 80, 100}, reported)
}

func TestProgressConcurrentSegments(t *testing.T) {
	mu := sync.Mutex{}
	last := -1
	decreased := false
	progress := NewProgress(func(percent int) {
		mu.Lock()
		defer mu.Unlock()
		if percent <= last {
			decreased = true
		}
		last = percent
	}, 50, 50)

	wg := sync.WaitGroup{}
	for segment := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				progress.Advance(segment, float64(i+1)/100)
			}
		}()
	}
	wg.Wait()

	assert.False(t, decreased)
	assert.Equal(t, 100, last)
}

func TestProgressWithoutSink(t *testing.T) {
	progress := NewProgress(nil, 100)
	assert.NotPanics(t, func() {
		progress.Advance(0, 0.5)
		progress.Complete()
	})
}
