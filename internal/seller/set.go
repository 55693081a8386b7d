package seller

// mapIDSet implements IDSet using a map for O(1) lookups.
type mapIDSet struct {
	ids map[string]struct{}
}

// NewMapIDSet creates a new map-based seller id set.
func NewMapIDSet(capacity int) IDSet {
	return &mapIDSet{
		ids: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a seller id exists in the set.
func (s *mapIDSet) Contains(id string) bool {
	_, exists := s.ids[id]
	return exists
}

// Size returns the number of ids in the set.
func (s *mapIDSet) Size() int {
	return len(s.ids)
}

// Add adds a seller id to the set.
func (s *mapIDSet) Add(id string) {
	s.ids[id] = struct{}{}
}
