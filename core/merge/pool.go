package merge

import "sync"

// bufferPool recycles chunk buffers across groups so allocation pressure
// stays flat no matter how many groups stream through the engine.
type bufferPool struct {
	size int
	pool sync.Pool
}

func newBufferPool(size int) *bufferPool {
	return &bufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any { return make([]byte, size) },
		},
	}
}

func (p *bufferPool) get() []byte {
	return p.pool.Get().([]byte)[:p.size]
}

func (p *bufferPool) put(buf []byte) {
	if cap(buf) < p.size {
		return
	}
	p.pool.Put(buf[:cap(buf)])
}
