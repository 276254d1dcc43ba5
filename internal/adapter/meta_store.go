package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/placefold/internal/model"
)

// MetaDirName is the directory inside an exported folder that holds the
// element map and the snapshot. It is never part of the projection.
const MetaDirName = ".placefold"

const (
	mapFileName      = "map.yaml"
	snapshotFileName = "place.rbxlx.original"
)

// MetaStore persists and retrieves the element map and the original document
// snapshot of an exported folder.
type MetaStore interface {
	// Exists reports whether folder already holds an export.
	Exists(folder m.Path) (bool, error)
	SaveMap(folder m.Path, em *m.ElementMap) error
	LoadMap(folder m.Path) (*m.ElementMap, error)
	SaveSnapshot(folder m.Path, text []byte) error
	LoadSnapshot(folder m.Path) ([]byte, error)
	// SnapshotPath is the location of the snapshot written by SaveSnapshot.
	SnapshotPath(folder m.Path) m.Path
}

// LocalMetaStore stores metadata as YAML under MetaDirName.
type LocalMetaStore struct {
	fs ProjectFSAdapter
}

// NewLocalMetaStore constructs a LocalMetaStore on top of fs.
func NewLocalMetaStore(fs ProjectFSAdapter) *LocalMetaStore {
	return &LocalMetaStore{fs: fs}
}

type elementMapYAML struct {
	Version        int            `yaml:"version"`
	Source         string         `yaml:"source"`
	SnapshotSHA256 string         `yaml:"snapshot_sha256"`
	CreatedAt      time.Time      `yaml:"created_at"`
	Entries        []mapEntryYAML `yaml:"entries"`
}

type mapEntryYAML struct {
	Path               string `yaml:"path"`
	Referent           string `yaml:"referent"`
	Class              string `yaml:"class"`
	Kind               string `yaml:"kind"`
	OriginalProperties string `yaml:"original_properties,omitempty"`
	OriginalScript     string `yaml:"original_script,omitempty"`
}

func (s *LocalMetaStore) metaDir(folder m.Path) m.Path {
	return s.fs.JoinPath(string(folder), MetaDirName)
}

func (s *LocalMetaStore) mapPath(folder m.Path) m.Path {
	return s.fs.JoinPath(string(folder), MetaDirName, mapFileName)
}

// SnapshotPath returns the snapshot location for folder.
func (s *LocalMetaStore) SnapshotPath(folder m.Path) m.Path {
	return s.fs.JoinPath(string(folder), MetaDirName, snapshotFileName)
}

// Exists reports whether the map file of an export is present.
func (s *LocalMetaStore) Exists(folder m.Path) (bool, error) {
	_, err := s.fs.FileInfo(s.metaDir(folder))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// SaveMap writes the element map with entries sorted by path.
func (s *LocalMetaStore) SaveMap(folder m.Path, em *m.ElementMap) error {
	if err := s.fs.MkdirAll(s.metaDir(folder)); err != nil {
		return fmt.Errorf("create meta directory: %w", err)
	}

	em.Sort()

	doc := elementMapYAML{
		Version:        em.Version,
		Source:         string(em.Source),
		SnapshotSHA256: em.SnapshotSHA256,
		CreatedAt:      em.CreatedAt.UTC(),
		Entries:        make([]mapEntryYAML, 0, len(em.Entries)),
	}

	for _, e := range em.Entries {
		doc.Entries = append(doc.Entries, mapEntryYAML{
			Path:               string(e.Path.Slash()),
			Referent:           e.Referent,
			Class:              e.Class,
			Kind:               string(e.Kind),
			OriginalProperties: e.OriginalProperties,
			OriginalScript:     e.OriginalScript,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode element map: %w", err)
	}

	if err := s.fs.WriteFile(s.mapPath(folder), data, 0o644); err != nil {
		return fmt.Errorf("write element map: %w", err)
	}

	return nil
}

// LoadMap reads and validates the element map of folder.
func (s *LocalMetaStore) LoadMap(folder m.Path) (*m.ElementMap, error) {
	path := s.mapPath(folder)

	data, err := s.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &m.MissingSnapshotError{Path: path, Err: err}
	}

	if err != nil {
		return nil, fmt.Errorf("read element map: %w", err)
	}

	var doc elementMapYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &m.CorruptElementMapError{Path: path, Reason: err.Error()}
	}

	if doc.Version != m.ElementMapVersion {
		return nil, &m.CorruptElementMapError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported version %d (want %d)", doc.Version, m.ElementMapVersion),
		}
	}

	em := &m.ElementMap{
		Version:        doc.Version,
		Source:         m.Path(doc.Source),
		SnapshotSHA256: doc.SnapshotSHA256,
		CreatedAt:      doc.CreatedAt,
	}

	seen := make(map[string]struct{}, len(doc.Entries))

	for i, e := range doc.Entries {
		if e.Path == "" || e.Referent == "" {
			return nil, &m.CorruptElementMapError{Path: path, Reason: fmt.Sprintf("entry %d lacks a path or referent", i)}
		}

		if _, dup := seen[e.Path]; dup {
			return nil, &m.CorruptElementMapError{Path: path, Reason: fmt.Sprintf("duplicate entry for %s", e.Path)}
		}

		seen[e.Path] = struct{}{}

		kind := m.EntryKind(e.Kind)
		if kind != m.EntryScript && kind != m.EntryProperties {
			return nil, &m.CorruptElementMapError{Path: path, Reason: fmt.Sprintf("entry %s has unknown kind %q", e.Path, e.Kind)}
		}

		em.Add(m.MapEntry{
			Path:               m.Path(e.Path),
			Referent:           e.Referent,
			Class:              e.Class,
			Kind:               kind,
			OriginalProperties: e.OriginalProperties,
			OriginalScript:     e.OriginalScript,
		})
	}

	return em, nil
}

// SaveSnapshot stores the original document text verbatim.
func (s *LocalMetaStore) SaveSnapshot(folder m.Path, text []byte) error {
	if err := s.fs.MkdirAll(s.metaDir(folder)); err != nil {
		return fmt.Errorf("create meta directory: %w", err)
	}

	if err := s.fs.WriteFile(s.SnapshotPath(folder), text, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot returns the snapshot text of folder.
func (s *LocalMetaStore) LoadSnapshot(folder m.Path) ([]byte, error) {
	path := s.SnapshotPath(folder)

	text, err := s.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &m.MissingSnapshotError{Path: path, Err: err}
	}

	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return text, nil
}
