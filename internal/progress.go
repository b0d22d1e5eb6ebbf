package internal

import "sync"

// Progress combines the progress of several weighted segments of work
// into one percentage and reports it to a sink.
//
// The reported values never decrease and the sink is never called
// twice with the same value. Segments can be advanced concurrently.
type Progress struct {
	mu       sync.Mutex
	sink     func(percent int)
	weights  []int
	done     []float64
	reported int
}

// Creates a Progress with one segment per weight.
// The weights should add up to 100. A nil sink is allowed.
func NewProgress(sink func(percent int), weights ...int) *Progress {
	return &Progress{
		sink:     sink,
		weights:  weights,
		done:     make([]float64, len(weights)),
		reported: -1,
	}
}

// Sets the completed fraction of a segment.
// A fraction lower than a previous one is ignored.
func (p *Progress) Advance(segment int, fraction float64) {
	fraction = min(max(fraction, 0), 1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if fraction <= p.done[segment] {
		return
	}
	p.done[segment] = fraction

	total := 0.0
	for i, w := range p.weights {
		total += float64(w) * p.done[i]
	}
	p.report(min(int(total), 100))
}

// Completes all segments and reports 100
func (p *Progress) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.done {
		p.done[i] = 1
	}
	p.report(100)
}

func (p *Progress) report(percent int) {
	if percent <= p.reported {
		return
	}
	p.reported = percent
	if p.sink != nil {
		p.sink(percent)
	}
}
