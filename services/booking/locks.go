package booking

import "sync"

// providerLocks serializes booking mutations per provider within this
// process. The transactional slot precondition in the repository remains the
// final arbiter across processes.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *providerLocks) get(providerID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	l, ok := p.locks[providerID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[providerID] = l
	}
	return l
}
