package tweak

import "sync"

// errorRing keeps the most recent errors of a Follower. A nil ring records
// nothing.
type errorRing struct {
	mu    sync.RWMutex
	buf   []error
	head  int
	count int
}

// newErrorRing returns a ring holding up to size errors, or nil when size
// is not positive.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{buf: make([]error, size)}
}

func (r *errorRing) push(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.head] = err
	r.head = (r.head + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
}

func (r *errorRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.buf)
	r.head = 0
	r.count = 0
}

// all returns the recorded errors, oldest first, or nil when there are none.
func (r *errorRing) all() []error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}
	out := make([]error, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}
