package model

import (
	"sort"
	"time"
)

// ElementMapVersion is the current on-disk format version of the element map.
const ElementMapVersion = 1

// EntryKind tells which part of an element a projected file carries.
type EntryKind string

const (
	// EntryScript files hold the body of a script's Source property.
	EntryScript EntryKind = "script"
	// EntryProperties files hold the editable properties of an element.
	EntryProperties EntryKind = "properties"
)

// MapEntry correlates one projected file with the element it was exported from.
type MapEntry struct {
	Path               Path // slash-separated, relative to the folder root
	Referent           string
	Class              string
	Kind               EntryKind
	OriginalProperties string
	OriginalScript     string
}

// ElementMap is the path to identity table written at parse time.
type ElementMap struct {
	Version        int
	Source         Path
	SnapshotSHA256 string
	CreatedAt      time.Time
	Entries        []MapEntry

	index map[Path]int
}

// Add appends an entry, replacing any previous entry for the same path.
func (em *ElementMap) Add(entry MapEntry) {
	entry.Path = entry.Path.Slash()

	if em.index == nil {
		em.reindex()
	}

	if i, ok := em.index[entry.Path]; ok {
		em.Entries[i] = entry
		return
	}

	em.index[entry.Path] = len(em.Entries)
	em.Entries = append(em.Entries, entry)
}

// Lookup returns the entry tracked for path.
func (em *ElementMap) Lookup(path Path) (MapEntry, bool) {
	if em.index == nil || len(em.index) != len(em.Entries) {
		em.reindex()
	}

	i, ok := em.index[path.Slash()]
	if !ok {
		return MapEntry{}, false
	}

	return em.Entries[i], true
}

// Sort orders entries by path.
func (em *ElementMap) Sort() {
	sort.SliceStable(em.Entries, func(i, j int) bool {
		return em.Entries[i].Path < em.Entries[j].Path
	})
	em.reindex()
}

func (em *ElementMap) reindex() {
	em.index = make(map[Path]int, len(em.Entries))
	for i, e := range em.Entries {
		em.index[e.Path] = i
	}
}
