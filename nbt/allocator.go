package nbt

import (
	"sync"

	"github.com/pkg/errors"
)

// Allocator supplies the byte buffers that back string and array payloads
// and the encoder's output buffer. Free is called exactly once for every
// non-empty buffer handed out by Alloc once the owning Tag is deleted, the
// payload is replaced, or an encoder buffer is outgrown. Object keys are
// ordinary Go strings and never come from the Allocator.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// HeapAllocator allocates from the Go heap and leaves reclamation to the
// garbage collector.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrAllocation, "negative size %d", size)
	}
	return make([]byte, size), nil
}

func (HeapAllocator) Free([]byte) {}

var (
	defaultAllocMtx sync.RWMutex
	defaultAlloc    Allocator = HeapAllocator{}
)

// GetAllocator returns the process-wide default Allocator.
func GetAllocator() Allocator {
	defaultAllocMtx.RLock()
	defer defaultAllocMtx.RUnlock()
	return defaultAlloc
}

// SetAllocator replaces the process-wide default Allocator. Passing nil
// restores the HeapAllocator. Tags remember the allocator they were created
// with, so replacing the default never affects existing trees.
func SetAllocator(a Allocator) {
	if a == nil {
		a = HeapAllocator{}
	}
	defaultAllocMtx.Lock()
	defer defaultAllocMtx.Unlock()
	defaultAlloc = a
}

// CountingAllocator wraps another Allocator and tracks live buffers. When
// Limit is positive, allocations that would push the live byte count over
// it fail with ErrAllocation.
type CountingAllocator struct {
	Backend Allocator
	Limit   int

	mtx       sync.Mutex
	live      int
	liveBytes int
	allocs    int
}

var _ Allocator = (*CountingAllocator)(nil)

func NewCountingAllocator(backend Allocator, limit int) *CountingAllocator {
	if backend == nil {
		backend = HeapAllocator{}
	}
	return &CountingAllocator{
		Backend: backend,
		Limit:   limit,
	}
}

func (c *CountingAllocator) Alloc(size int) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.Limit > 0 && c.liveBytes+size > c.Limit {
		return nil, errors.Wrapf(ErrAllocation, "allocating %d bytes would exceed limit of %d", size, c.Limit)
	}
	buf, err := c.Backend.Alloc(size)
	if err != nil {
		return nil, err
	}
	if cap(buf) > 0 {
		c.live++
		c.liveBytes += cap(buf)
		c.allocs++
	}
	return buf, nil
}

func (c *CountingAllocator) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	c.mtx.Lock()
	c.live--
	c.liveBytes -= cap(buf)
	c.mtx.Unlock()
	c.Backend.Free(buf)
}

// Live returns the number of buffers allocated and not yet freed.
func (c *CountingAllocator) Live() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.live
}

// LiveBytes returns the total capacity of buffers not yet freed.
func (c *CountingAllocator) LiveBytes() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.liveBytes
}

// Allocs returns the number of non-empty buffers ever handed out.
func (c *CountingAllocator) Allocs() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.allocs
}

// allocBuf requests n bytes from a. Zero-length requests never reach the
// allocator.
func allocBuf(a Allocator, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf, err := a.Alloc(n)
	if err != nil {
		if errors.Is(err, ErrAllocation) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrAllocation, "allocating %d bytes: %v", n, err)
	}
	if len(buf) < n {
		return nil, errors.Wrapf(ErrAllocation, "allocator returned %d bytes, wanted %d", len(buf), n)
	}
	return buf[:n], nil
}

func freeBuf(a Allocator, buf []byte) {
	if cap(buf) == 0 {
		return
	}
	a.Free(buf)
}
