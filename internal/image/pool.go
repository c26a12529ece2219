package image

import "sync"

// Allocator hands out byte slices for pixel storage.
//
// Alloc must return a zeroed slice of exactly n bytes or an error; it never
// panics on large requests. Free gives a slice back once the caller is done
// with it. Implementations used concurrently must be safe for concurrent use.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// DefaultMaxAlloc is the largest single allocation the default pool grants.
const DefaultMaxAlloc = 1 << 30

// Pool is a thread-safe pool of byte slices bucketed by length.
//
// Scratch buffers of a dilation are all the same size, and bake paths
// process many textures of identical dimensions, so reuse by exact length
// keeps GC pressure flat. Requests over MaxAlloc fail with ErrOutOfMemory.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	buckets  map[int][][]byte
	maxSize  int // max buffers per bucket
	maxAlloc int
}

// NewPool creates a pool retaining at most maxPerBucket slices of each
// length and refusing single requests larger than maxAlloc bytes.
// A maxPerBucket of 0 means unlimited (use with caution); a maxAlloc of 0
// means DefaultMaxAlloc.
func NewPool(maxPerBucket, maxAlloc int) *Pool {
	if maxAlloc <= 0 {
		maxAlloc = DefaultMaxAlloc
	}
	return &Pool{
		buckets:  make(map[int][][]byte),
		maxSize:  maxPerBucket,
		maxAlloc: maxAlloc,
	}
}

// MaxAlloc returns the largest request the pool grants.
func (p *Pool) MaxAlloc() int {
	return p.maxAlloc
}

// Alloc returns a zeroed slice of n bytes, reusing a pooled one if possible.
func (p *Pool) Alloc(n int) ([]byte, error) {
	if n < 0 || n > p.maxAlloc {
		return nil, ErrOutOfMemory
	}

	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf, nil
	}
	p.mu.Unlock()

	return make([]byte, n), nil
}

// Free returns a slice to the pool for reuse.
// If b is nil or the bucket is at max capacity, the slice is discarded.
func (p *Pool) Free(b []byte) {
	if b == nil {
		return
	}
	n := len(b)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, b)
}

// Pooled returns how many slices of length n are waiting for reuse.
func (p *Pool) Pooled(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8, DefaultMaxAlloc)

// DefaultPool returns the package-level pool.
func DefaultPool() *Pool {
	return defaultPool
}
