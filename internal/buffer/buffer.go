// package buffer provides some sample buffer primitives.
package buffer

import (
	"sync"
)

// Ring keeps the most recent samples written to it. It is safe for concurrent
// use, so one goroutine can write from a device callback while another reads.
type Ring struct {
	mu     sync.Mutex
	buf    []int16
	writep int
	n      int // number of valid samples, up to len(buf)
}

// NewRing allocates a ring holding the latest size samples.
func NewRing(size int) *Ring {
	return &Ring{
		buf: make([]int16, size),
	}
}

// Write appends samples, overwriting the oldest once the ring is full.
func (r *Ring) Write(in []int16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) == 0 {
		return
	}
	if len(in) > len(r.buf) {
		// only the tail can survive.
		in = in[len(in)-len(r.buf):]
	}
	copied := copy(r.buf[r.writep:], in)
	if copied < len(in) {
		// we couldn't fit it all on the end.
		r.writep = copy(r.buf, in[copied:])
	} else {
		r.writep += copied
	}
	if r.writep == len(r.buf) {
		r.writep = 0
	}
	r.n = min(r.n+len(in), len(r.buf))
}

// Latest copies the most recent samples into out, oldest first, and returns
// how many it copied. That is the smaller of len(out) and Len.
func (r *Ring) Latest(out []int16) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := min(len(out), r.n)
	start := r.writep - k
	if start < 0 {
		start += len(r.buf)
		n := copy(out, r.buf[start:])
		copy(out[n:k], r.buf[:r.writep])
		return k
	}
	copy(out, r.buf[start:r.writep])
	return k
}

// Len returns the number of samples held, at most the ring's size.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

var pool = sync.Pool{
	New: func() any {
		b := make([]int16, 4096)
		return &b
	},
}

// Get returns a scratch block of size samples. Its contents are garbage.
func Get(size int) []int16 {
	b := *(pool.Get().(*[]int16))
	if cap(b) < size {
		b = make([]int16, size)
	}
	return b[:size]
}

// Put returns a block from Get for reuse.
func Put(b []int16) {
	pool.Put(&b)
}
