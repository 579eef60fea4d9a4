// Package selection tracks which records are marked during a review session.
package selection

import "github.com/faizmokh/sugarlog/internal/record"

// Source provides the current records, in store order.
type Source interface {
	All() []record.Record
}

// Snapshot is a fixed record list, used when marks must not observe later
// store writes.
type Snapshot []record.Record

// All returns the snapshot records.
func (s Snapshot) All() []record.Record {
	return s
}

// Set marks record identities for bulk export or deletion. It lives only as
// long as the session that owns it and is never persisted. A Set is not safe
// for concurrent use.
type Set struct {
	source Source
	marked map[string]bool
}

// New returns an empty selection over source.
func New(source Source) *Set {
	return &Set{source: source, marked: make(map[string]bool)}
}

// Toggle flips the mark on id and returns the new state.
func (s *Set) Toggle(id string) bool {
	if s.marked[id] {
		delete(s.marked, id)
		return false
	}
	s.marked[id] = true
	return true
}

// Mark sets the mark on id.
func (s *Set) Mark(id string) {
	s.marked[id] = true
}

// SetAll marks or clears every record currently in the source.
func (s *Set) SetAll(marked bool) {
	if !marked {
		s.Reset()
		return
	}
	for _, r := range s.source.All() {
		s.marked[r.ID] = true
	}
}

// IsMarked reports whether id is marked.
func (s *Set) IsMarked(id string) bool {
	return s.marked[id]
}

// Marked returns the marked records in source order. Marks on identities the
// source no longer holds are ignored.
func (s *Set) Marked() []record.Record {
	var out []record.Record
	for _, r := range s.source.All() {
		if s.marked[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// IDs returns the identities of Marked.
func (s *Set) IDs() []string {
	marked := s.Marked()
	ids := make([]string, len(marked))
	for i, r := range marked {
		ids[i] = r.ID
	}
	return ids
}

// Count returns how many records in the source are marked.
func (s *Set) Count() int {
	n := 0
	for _, r := range s.source.All() {
		if s.marked[r.ID] {
			n++
		}
	}
	return n
}

// Reset clears every mark.
func (s *Set) Reset() {
	s.marked = make(map[string]bool)
}
