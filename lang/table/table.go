// Package table implements the open-addressing hash table used to intern
// strings. It exists as a hand-rolled data structure (rather than another
// use of dolthub/swiss) because string interning depends on two invariants
// a generic map cannot give us: content-addressed lookup of a raw byte
// sequence before any *object.String for it exists (Find), and a
// tombstone-on-delete scheme so the weak sweep that drops collected strings
// never breaks a probe sequence for a string that hashed to the same
// bucket.
package table

import "github.com/emberlang/ember/lang/object"

const maxLoad = 0.75

// entry is empty when key == nil, a tombstone when key == tombstone, and
// otherwise holds a live interned string.
type entry struct {
	key *object.String
}

var tombstone = &object.String{}

// Interner is an open-addressing table with linear probing, mapping string
// content to the single canonical *object.String for that content.
type Interner struct {
	entries []entry
	count   int // live entries + tombstones, used against maxLoad
	live    int
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{}
}

// Find returns the canonical String for data if one has already been
// interned, or nil otherwise.
func (t *Interner) Find(data string) *object.String {
	if len(t.entries) == 0 {
		return nil
	}
	return t.find(data, object.HashString(data))
}

func (t *Interner) find(data string, hash uint32) *object.String {
	mask := uint32(len(t.entries) - 1)
	index := hash & mask
	for {
		e := &t.entries[index]
		if e.key == nil {
			return nil
		}
		if e.key != tombstone && e.key.Hash == hash && e.key.Data == data {
			return e.key
		}
		index = (index + 1) & mask
	}
}

// Add interns s, assuming Find has already reported no existing entry for
// its content. It grows the table first if adding s would push the load
// factor past maxLoad.
func (t *Interner) Add(s *object.String) {
	if float64(t.count+1) > float64(len(t.entries))*maxLoad {
		t.grow()
	}
	t.insert(s)
}

func (t *Interner) insert(s *object.String) bool {
	mask := uint32(len(t.entries) - 1)
	index := s.Hash & mask
	var firstTombstone = -1
	for {
		e := &t.entries[index]
		if e.key == nil {
			if firstTombstone != -1 {
				t.entries[firstTombstone].key = s
			} else {
				e.key = s
				t.count++
			}
			t.live++
			return true
		} else if e.key == tombstone {
			if firstTombstone == -1 {
				firstTombstone = int(index)
			}
		} else if e.key.Hash == s.Hash && e.key.Data == s.Data {
			return false // already interned
		}
		index = (index + 1) & mask
	}
}

func (t *Interner) grow() {
	newCap := 8
	if len(t.entries) > 0 {
		newCap = len(t.entries) * 2
	}
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	t.live = 0
	for _, e := range old {
		if e.key == nil || e.key == tombstone {
			continue
		}
		t.insert(e.key)
	}
}

// Delete removes s from the table, leaving a tombstone behind so later
// probe sequences that passed through this bucket still find entries
// beyond it.
func (t *Interner) Delete(s *object.String) {
	if len(t.entries) == 0 {
		return
	}
	mask := uint32(len(t.entries) - 1)
	index := s.Hash & mask
	for {
		e := &t.entries[index]
		if e.key == nil {
			return
		}
		if e.key == s {
			e.key = tombstone
			t.live--
			return
		}
		index = (index + 1) & mask
	}
}

// SweepWeak drops every interned string the collector reports as
// unreachable (isWhite returns true), replacing its slot with a tombstone.
// The virtual machine's heap calls this after tracing roots but before the
// general sweep, so the intern table never outlives the strings it
// references without the table itself holding a marking reference to them.
func (t *Interner) SweepWeak(isWhite func(*object.String) bool) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.key == nil || e.key == tombstone {
			continue
		}
		if isWhite(e.key) {
			e.key = tombstone
			t.live--
		}
	}
}

// Len reports the number of live interned strings.
func (t *Interner) Len() int { return t.live }
