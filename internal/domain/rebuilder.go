package domain

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mouse-blink/placefold/internal/adapter"
	"github.com/mouse-blink/placefold/internal/domain/literal"
	m "github.com/mouse-blink/placefold/internal/model"
)

// Rebuilder computes the changes made in an exported folder and patches them
// into the snapshot of the original document.
type Rebuilder interface {
	// Rebuild runs every stage and returns the patched document. Fatal errors
	// are *model.StageError; recoverable problems are report warnings.
	Rebuild(folder m.Path) (RebuildResult, error)
}

// RebuildResult is the outcome of a successful rebuild.
type RebuildResult struct {
	Document []byte
	Original []byte
	Report   m.RebuildReport
}

type rebuilder struct {
	fs     adapter.ProjectFSAdapter
	meta   adapter.MetaStore
	place  adapter.PlaceFileAdapter
	proj   Projection
	logger *zap.Logger
}

// NewRebuilder creates a Rebuilder.
func NewRebuilder(
	fs adapter.ProjectFSAdapter,
	meta adapter.MetaStore,
	place adapter.PlaceFileAdapter,
	cfg m.Config,
	logger *zap.Logger,
) Rebuilder {
	return &rebuilder{fs: fs, meta: meta, place: place, proj: NewProjection(cfg), logger: logger}
}

// rebuildRun holds the state of a single Rebuild call. Nothing is shared
// between runs.
type rebuildRun struct {
	folder m.Path
	em     *m.ElementMap
	doc    *m.Document
	report m.RebuildReport
}

func (r *rebuildRun) warn(code m.WarningCode, path m.Path, referent, format string, args ...any) {
	r.report.Warnings = append(r.report.Warnings, m.Warning{
		Code:     code,
		Path:     path,
		Referent: referent,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *rebuildRun) fail(err error) error {
	return &m.StageError{Stage: r.report.Stage, Err: err}
}

func (b *rebuilder) Rebuild(folder m.Path) (RebuildResult, error) {
	run := &rebuildRun{
		folder: folder,
		report: m.RebuildReport{Folder: folder, Stage: m.StageIdle},
	}

	run.report.Stage = m.StageLoadingSnapshot
	b.logger.Debug("rebuild stage", zap.Stringer("stage", run.report.Stage), zap.String("folder", string(folder)))

	if err := b.loadSnapshot(run); err != nil {
		return RebuildResult{Report: run.report}, run.fail(err)
	}

	run.report.Stage = m.StageComputingChanges
	b.logger.Debug("rebuild stage", zap.Stringer("stage", run.report.Stage))

	if err := b.computeChanges(run); err != nil {
		return RebuildResult{Report: run.report}, run.fail(err)
	}

	run.report.Stage = m.StagePatchingDocument
	b.logger.Debug("rebuild stage", zap.Stringer("stage", run.report.Stage), zap.Int("changes", len(run.report.Changes)))

	var patches []m.Patch
	for _, c := range run.report.Changes {
		patches = append(patches, c.Patches...)
	}

	out, err := ApplyPatches(run.doc.Text, patches)
	if err != nil {
		return RebuildResult{Report: run.report}, run.fail(err)
	}

	run.report.Stage = m.StageDone

	return RebuildResult{Document: out, Original: run.doc.Text, Report: run.report}, nil
}

func (b *rebuilder) loadSnapshot(run *rebuildRun) error {
	em, err := b.meta.LoadMap(run.folder)
	if err != nil {
		return err
	}

	run.em = em
	run.report.Source = em.Source

	text, err := b.meta.LoadSnapshot(run.folder)
	if err != nil {
		return err
	}

	if em.SnapshotSHA256 != "" {
		sum, err := b.fs.HashFile(b.meta.SnapshotPath(run.folder))
		if err != nil {
			return fmt.Errorf("hash snapshot: %w", err)
		}

		if sum != em.SnapshotSHA256 {
			run.warn(m.WarnStaleSnapshot, b.meta.SnapshotPath(run.folder), "",
				"snapshot was modified after export; spans are taken from the current snapshot")
		}
	}

	doc, warnings, err := b.place.Parse(text)
	if err != nil {
		return err
	}

	if len(warnings) > 0 {
		b.logger.Debug("snapshot parse warnings", zap.Int("count", len(warnings)))
	}

	run.doc = doc

	return nil
}

func (b *rebuilder) computeChanges(run *rebuildRun) error {
	for _, entry := range run.em.Entries {
		el, ok := run.doc.Lookup(entry.Referent)
		if !ok {
			run.warn(m.WarnOrphanedMapping, entry.Path, entry.Referent, "element is not in the snapshot; file ignored")
			continue
		}

		if el.Class != entry.Class {
			return &m.CorruptElementMapError{
				Path:   entry.Path,
				Reason: fmt.Sprintf("referent %s is a %s in the snapshot but the map says %s", entry.Referent, el.Class, entry.Class),
			}
		}

		content, err := b.fs.ReadFile(b.fs.JoinPath(string(run.folder), string(entry.Path.Native())))
		if errors.Is(err, fs.ErrNotExist) {
			run.warn(m.WarnMissingFile, entry.Path, entry.Referent, "file was removed; element left unchanged")
			continue
		}

		if err != nil {
			run.warn(m.WarnUnreadableFile, entry.Path, entry.Referent, "%v", err)
			continue
		}

		switch entry.Kind {
		case m.EntryScript:
			change, err := b.scriptChange(run, entry, el, content)
			if err != nil {
				return err
			}

			if change != nil {
				run.report.Changes = append(run.report.Changes, *change)
			}
		case m.EntryProperties:
			changes, err := b.propertyChanges(run, entry, el, string(content))
			if err != nil {
				return err
			}

			run.report.Changes = append(run.report.Changes, changes...)
		}
	}

	return b.scanUntracked(run)
}

func (b *rebuilder) scriptChange(run *rebuildRun, entry m.MapEntry, el *m.Element, content []byte) (*m.Change, error) {
	src := scriptSource(el)
	if src == nil {
		return nil, &m.CorruptElementMapError{Path: entry.Path, Reason: fmt.Sprintf("element %s has no script source", el.Referent)}
	}

	original := stringValue(src.Value)
	body := m.NormalizeNewlines(string(content))

	if body == m.NormalizeNewlines(entry.OriginalScript) || body == m.NormalizeNewlines(original) {
		return nil, nil
	}

	if !m.IsXMLText(body) {
		run.warn(m.WarnInvalidScript, entry.Path, el.Referent, "script contains characters XML cannot represent; element left unchanged")
		return nil, nil
	}

	raw := run.doc.Text[src.InnerSpan.Start:src.InnerSpan.End]
	crlf := strings.Contains(original, "\r\n")

	var patch m.Patch

	if src.SelfClosing {
		text, err := b.place.SerializeProperty(src.Tag, src.Name, stringOfKind(src.Kind, body))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", entry.Path, err)
		}

		patch = m.Patch{Span: src.Span, Text: text}
	} else {
		patch = m.Patch{Span: src.InnerSpan, Text: b.encodeText(raw, body, src.CDATA, crlf)}
	}

	b.logger.Debug("script changed", zap.String("path", string(entry.Path)), zap.String("referent", el.Referent))

	return &m.Change{
		Path:     entry.Path,
		Referent: el.Referent,
		Property: src.Name,
		Kind:     src.Kind,
		Old:      m.NormalizeNewlines(original),
		New:      body,
		Patches:  []m.Patch{patch},
	}, nil
}

func (b *rebuilder) propertyChanges(run *rebuildRun, entry m.MapEntry, el *m.Element, content string) ([]m.Change, error) {
	originals := make(map[string]string)

	if entry.OriginalProperties != "" {
		assignments, _ := literal.Split(entry.OriginalProperties)
		for _, a := range assignments {
			originals[a.Name] = a.Literal
		}
	}

	assignments, syntaxErrs := literal.Split(content)
	for _, se := range syntaxErrs {
		run.warn(m.WarnInvalidLiteral, entry.Path, el.Referent, "%v", se)
	}

	kept, overridden := literal.Dedupe(assignments)
	for _, a := range overridden {
		run.warn(m.WarnDuplicateProperty, entry.Path, el.Referent, "line %d: %s is assigned again later; the last value wins", a.Line, a.Name)
	}

	var source *m.Property
	if b.proj.cfg.IsScript(el.Class) {
		source = scriptSource(el)
	}

	var changes []m.Change

	for _, a := range kept {
		prop := editableProperty(el, a.Name)
		if prop == nil || prop == source {
			run.warn(m.WarnUnknownProperty, entry.Path, el.Referent, "line %d: %s %s has no editable property %s", a.Line, el.Class, el.Referent, a.Name)
			continue
		}

		if orig, ok := originals[a.Name]; ok && orig == a.Literal {
			continue
		}

		value, err := literal.FromLiteral(prop.Kind, a.Literal)
		if err != nil {
			run.warn(m.WarnInvalidLiteral, entry.Path, el.Referent, "line %d: %s: %v", a.Line, a.Name, err)
			continue
		}

		if m.Equal(value, prop.Value) {
			continue
		}

		patches, err := b.propertyPatches(run, prop, value)
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", entry.Path, a.Name, err)
		}

		old, ok := originals[a.Name]
		if !ok {
			old, _ = literal.ToLiteral(prop.Kind, prop.Value)
		}

		changes = append(changes, m.Change{
			Path:     entry.Path,
			Referent: el.Referent,
			Property: prop.Name,
			Kind:     prop.Kind,
			Old:      old,
			New:      a.Literal,
			Patches:  patches,
		})
	}

	return changes, nil
}

// propertyPatches replaces the smallest regions that hold the changed value:
// the inner text of a scalar, or the inner text of each changed composite
// field. Self-closing tags are rewritten whole.
func (b *rebuilder) propertyPatches(run *rebuildRun, prop *m.Property, value m.Value) ([]m.Patch, error) {
	if prop.SelfClosing {
		text, err := b.place.SerializeProperty(prop.Tag, prop.Name, value)
		if err != nil {
			return nil, err
		}

		return []m.Patch{{Span: prop.Span, Text: text}}, nil
	}

	if len(prop.Fields) > 0 {
		oldC, _ := m.Components(prop.Value)
		newC, _ := m.Components(value)

		var patches []m.Patch

		for i, f := range m.Fields(prop.Kind) {
			if m.SameNumber(oldC[i], newC[i]) {
				continue
			}

			text, err := b.place.EncodeField(value, f.Name)
			if err != nil {
				return nil, err
			}

			patches = append(patches, m.Patch{Span: prop.Fields[f.Name], Text: text})
		}

		return patches, nil
	}

	if prop.Kind == m.KindString || prop.Kind == m.KindProtectedString {
		raw := run.doc.Text[prop.InnerSpan.Start:prop.InnerSpan.End]

		return []m.Patch{{Span: prop.InnerSpan, Text: b.encodeText(raw, stringValue(value), prop.CDATA, false)}}, nil
	}

	text, err := b.place.EncodeValue(value)
	if err != nil {
		return nil, err
	}

	return []m.Patch{{Span: prop.InnerSpan, Text: text}}, nil
}

// encodeText renders string content in the line-ending style of raw. A raw
// CRLF is written back raw; crlf alone asks for carriage returns kept through
// character references outside CDATA.
func (b *rebuilder) encodeText(raw []byte, s string, cdata, crlf bool) string {
	if bytes.Contains(raw, []byte("\r\n")) {
		if cdata {
			return b.place.EncodeScript(s, true, true)
		}

		return strings.ReplaceAll(b.place.EncodeScript(s, false, false), "\n", "\r\n")
	}

	return b.place.EncodeScript(s, cdata, crlf)
}

// scanUntracked warns about files that look exported but are not in the map.
func (b *rebuilder) scanUntracked(run *rebuildRun) error {
	root := string(run.folder)

	return b.fs.Walk(run.folder, true, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == root {
				return err
			}

			return nil
		}

		if info.IsDir() {
			if info.Name() == adapter.MetaDirName {
				return filepath.SkipDir
			}

			return nil
		}

		if !b.proj.IsProjected(info.Name()) {
			return nil
		}

		rel, err := b.fs.RelPath(run.folder, m.Path(p))
		if err != nil {
			return nil
		}

		if _, tracked := run.em.Lookup(rel.Slash()); !tracked {
			run.warn(m.WarnUntrackedFile, rel.Slash(), "", "file is not in the element map; new objects are not added to the document")
		}

		return nil
	})
}

func stringOfKind(kind m.Kind, s string) m.Value {
	if kind == m.KindString {
		return m.ValueString(s)
	}

	return m.ValueProtectedString(s)
}
