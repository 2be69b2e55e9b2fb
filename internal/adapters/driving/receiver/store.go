package receiver

import "sync"

type entry struct {
	key string
	rec Record
}

// recordStore holds the newest records and the dedupe keys they own.
// A key is forgotten when its record is evicted.
type recordStore struct {
	mu      sync.Mutex
	keep    int
	entries []entry // oldest first
	keys    map[string]struct{}
}

func newRecordStore(keep int) *recordStore {
	return &recordStore{
		keep: keep,
		keys: make(map[string]struct{}),
	}
}

// add stores rec under key. An existing key is rejected unless replace
// is set, in which case the older record is dropped. An empty key never
// conflicts.
func (s *recordStore) add(key string, rec Record, replace bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if _, exists := s.keys[key]; exists {
			if !replace {
				return false
			}
			kept := s.entries[:0]
			for _, e := range s.entries {
				if e.key != key {
					kept = append(kept, e)
				}
			}
			s.entries = kept
		}
		s.keys[key] = struct{}{}
	}

	s.entries = append(s.entries, entry{key: key, rec: rec})
	for len(s.entries) > s.keep {
		if k := s.entries[0].key; k != "" {
			delete(s.keys, k)
		}
		s.entries = s.entries[1:]
	}
	return true
}

func (s *recordStore) recent() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i].rec)
	}
	return out
}
