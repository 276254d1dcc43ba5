package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/placefold/internal/model"
)

func newTestMetaStore() *LocalMetaStore {
	return NewLocalMetaStore(NewLocalProjectFSAdapter())
}

func sampleElementMap() *m.ElementMap {
	em := &m.ElementMap{
		Version:        m.ElementMapVersion,
		Source:         "/places/game.rbxlx",
		SnapshotSHA256: "abc123",
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	em.Add(m.MapEntry{
		Path:               "Workspace/Part.part.model",
		Referent:           "RBX2",
		Class:              "Part",
		Kind:               m.EntryProperties,
		OriginalProperties: "Anchored = true\nSize = {\n    X = 4,\n}\n",
	})
	em.Add(m.MapEntry{
		Path:           "Workspace/Util.module.lua",
		Referent:       "RBX3",
		Class:          "ModuleScript",
		Kind:           m.EntryScript,
		OriginalScript: "local M = {}\n\treturn M  \n",
	})
	em.Add(m.MapEntry{
		Path:     "Workspace.workspace.model",
		Referent: "RBX1",
		Class:    "Workspace",
		Kind:     m.EntryProperties,
	})

	return em
}

func TestLocalMetaStore_SaveAndLoadMap(t *testing.T) {
	t.Parallel()

	folder := m.Path(t.TempDir())
	store := newTestMetaStore()

	exists, err := store.Exists(folder)
	require.NoError(t, err)
	assert.False(t, exists)

	em := sampleElementMap()
	require.NoError(t, store.SaveMap(folder, em))

	exists, err = store.Exists(folder)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.LoadMap(folder)
	require.NoError(t, err)

	if diff := cmp.Diff(em, loaded, cmpopts.IgnoreUnexported(m.ElementMap{})); diff != "" {
		t.Errorf("LoadMap() mismatch (-want +got):\n%s", diff)
	}

	entry, ok := loaded.Lookup("Workspace/Util.module.lua")
	require.True(t, ok)
	assert.Equal(t, "RBX3", entry.Referent)

	// Entries are stored sorted by path.
	data, err := os.ReadFile(filepath.Join(string(folder), MetaDirName, "map.yaml"))
	require.NoError(t, err)

	var raw elementMapYAML
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Len(t, raw.Entries, 3)
	assert.Equal(t, "Workspace.workspace.model", raw.Entries[0].Path)
	assert.Equal(t, "Workspace/Part.part.model", raw.Entries[1].Path)
}

func TestLocalMetaStore_LoadMap_Missing(t *testing.T) {
	t.Parallel()

	_, err := newTestMetaStore().LoadMap(m.Path(t.TempDir()))
	require.Error(t, err)

	var missing *m.MissingSnapshotError
	assert.True(t, errors.As(err, &missing))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalMetaStore_LoadMap_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{
			name:   "not yaml",
			body:   "version: [",
			reason: "yaml",
		},
		{
			name:   "wrong version",
			body:   "version: 99\nentries: []\n",
			reason: "unsupported version 99",
		},
		{
			name: "duplicate path",
			body: "version: 1\nentries:\n" +
				"  - {path: a.part.model, referent: A, class: Part, kind: properties}\n" +
				"  - {path: a.part.model, referent: B, class: Part, kind: properties}\n",
			reason: "duplicate entry",
		},
		{
			name:   "empty referent",
			body:   "version: 1\nentries:\n  - {path: a.part.model, referent: \"\", class: Part, kind: properties}\n",
			reason: "lacks a path or referent",
		},
		{
			name:   "unknown kind",
			body:   "version: 1\nentries:\n  - {path: a.part.model, referent: A, class: Part, kind: blob}\n",
			reason: "unknown kind",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			folder := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(folder, MetaDirName), 0o755))
			writeTestFile(t, filepath.Join(folder, MetaDirName, "map.yaml"), tt.body)

			_, err := newTestMetaStore().LoadMap(m.Path(folder))
			require.Error(t, err)

			var corrupt *m.CorruptElementMapError
			require.True(t, errors.As(err, &corrupt), "got %T", err)
			assert.True(t, strings.Contains(corrupt.Reason, tt.reason), "reason %q", corrupt.Reason)
		})
	}
}

func TestLocalMetaStore_Snapshot(t *testing.T) {
	t.Parallel()

	folder := m.Path(t.TempDir())
	store := newTestMetaStore()

	_, err := store.LoadSnapshot(folder)

	var missing *m.MissingSnapshotError
	require.True(t, errors.As(err, &missing))

	text := []byte("<roblox>\r\n</roblox>")
	require.NoError(t, store.SaveSnapshot(folder, text))

	got, err := store.LoadSnapshot(folder)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	assert.Equal(t, m.Path(filepath.Join(string(folder), MetaDirName, "place.rbxlx.original")), store.SnapshotPath(folder))
}
