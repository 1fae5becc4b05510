package catalog

import "sync/atomic"

// Store holds the active catalog. Readers get whichever catalog was current
// when they called Get; a reload never mutates a catalog in place.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

func (s *Store) Get() *Catalog {
	return s.current.Load()
}

func (s *Store) Set(c *Catalog) {
	s.current.Store(c)
}
