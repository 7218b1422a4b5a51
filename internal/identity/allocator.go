package identity

import "sync"

// MaxID is the highest instance identifier VPCS accepts.
//
// The limit comes from the -m option of the VPCS executable: the identifier
// is used as the MAC address offset, and only 255 distinct offsets exist.
const MaxID = 255

// Allocator hands out unique instance identifiers in the range [1, MaxID].
//
// Identifiers double as the VPCS MAC address offset, so two live devices must
// never share one. A single Allocator is shared by all devices in the
// process.
//
// All methods are safe for concurrent use.
type Allocator struct {
	mu   sync.Mutex
	used map[int]struct{}
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		used: make(map[int]struct{}),
	}
}

// Allocate returns the lowest free identifier and marks it as in use.
// Returns ErrPoolExhausted when all MaxID identifiers are taken.
func (a *Allocator) Allocate() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id := 1; id <= MaxID; id++ {
		if _, taken := a.used[id]; !taken {
			a.used[id] = struct{}{}
			return id, nil
		}
	}
	return 0, ErrPoolExhausted
}

// Release returns an identifier to the free pool.
// Releasing an identifier that is not allocated is a no-op.
func (a *Allocator) Release(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.used, id)
}

// InUse reports whether an identifier is currently allocated.
func (a *Allocator) InUse(id int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, taken := a.used[id]
	return taken
}

// Count returns the number of allocated identifiers.
func (a *Allocator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.used)
}

// Reset clears the entire pool.
//
// Intended for test isolation; live devices still holding identifiers
// become stale after a reset.
func (a *Allocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.used)
}
