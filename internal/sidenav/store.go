package sidenav

import "sync"

// Store holds the current navigation State and notifies observers when it
// changes. Notifications are synchronous and delivered in subscription order.
type Store struct {
	mu        sync.Mutex
	value     State
	nextID    uint64
	order     []uint64
	observers map[uint64]func(State)
}

// NewStore constructs a store whose initial value is derived from width.
func NewStore(width int) *Store {
	return NewStoreWithState(DetermineInitialState(width))
}

// NewStoreWithState constructs a store holding initial.
func NewStoreWithState(initial State) *Store {
	return &Store{
		value:     initial,
		observers: make(map[uint64]func(State)),
	}
}

// Get returns the current value.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn and calls it right away with the current value.
// The returned function removes fn; it is safe to call more than once.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers[id] = fn
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// Set replaces the value and notifies every active observer with next.
// The regime invariant is not checked.
func (s *Store) Set(next State) {
	s.mu.Lock()
	s.value = next
	ids := make([]uint64, len(s.order))
	copy(ids, s.order)
	s.mu.Unlock()

	// Observers run without the lock so they may call back into the store.
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.observers[id]
		s.mu.Unlock()
		if !ok {
			continue
		}
		fn(next)
	}
}

// Update sets the value to fn applied to the current value.
func (s *Store) Update(fn func(State) State) {
	s.Set(fn(s.Get()))
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
