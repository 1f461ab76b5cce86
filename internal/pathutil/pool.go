package pathutil

import "sync"

// maxPooledDepth bounds the segment capacity of builders kept for reuse.
const maxPooledDepth = 128

var builders = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, 16)} },
}

// Get returns an empty PathBuilder from the pool.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put hands p back to the pool. Builders grown by unusually deep documents
// are dropped.
func Put(p *PathBuilder) {
	if p != nil && cap(p.segments) <= maxPooledDepth {
		builders.Put(p)
	}
}
