package domain

import (
	"fmt"
	"path"
	"sort"

	"go.uber.org/zap"

	"github.com/mouse-blink/placefold/internal/adapter"
	"github.com/mouse-blink/placefold/internal/domain/literal"
	m "github.com/mouse-blink/placefold/internal/model"
)

// Exporter writes the folder projection of a parsed document.
type Exporter interface {
	// Export writes one property file per element, one script file per script
	// and one directory per element with children under folder, and returns the
	// element map describing them.
	Export(doc *m.Document, folder m.Path) (*m.ElementMap, ExportStats, error)
}

// ExportStats counts what an export produced.
type ExportStats struct {
	Elements      int
	Scripts       int
	PropertyFiles int
}

type exporter struct {
	fs     adapter.ProjectFSAdapter
	proj   Projection
	logger *zap.Logger
}

// NewExporter creates an Exporter writing through fs.
func NewExporter(fs adapter.ProjectFSAdapter, cfg m.Config, logger *zap.Logger) Exporter {
	return &exporter{fs: fs, proj: NewProjection(cfg), logger: logger}
}

// exportState carries one Export call.
type exportState struct {
	folder m.Path
	em     *m.ElementMap
	stats  ExportStats
}

func (e *exporter) Export(doc *m.Document, folder m.Path) (*m.ElementMap, ExportStats, error) {
	st := &exportState{
		folder: folder,
		em:     &m.ElementMap{Version: m.ElementMapVersion},
	}

	if err := e.fs.MkdirAll(folder); err != nil {
		return nil, ExportStats{}, fmt.Errorf("create %s: %w", folder, err)
	}

	if err := e.exportLevel(st, "", doc.Roots, newNameAllocator(e.proj, rootReserved...)); err != nil {
		return nil, ExportStats{}, err
	}

	st.em.Sort()

	return st.em, st.stats, nil
}

func (e *exporter) exportLevel(st *exportState, dir string, els []*m.Element, alloc *nameAllocator) error {
	for _, el := range els {
		base := alloc.allocate(el)

		if err := e.exportElement(st, dir, base, el); err != nil {
			return err
		}

		if len(el.Children) == 0 {
			continue
		}

		childDir := path.Join(dir, base)
		if err := e.fs.MkdirAll(e.native(st, childDir)); err != nil {
			return fmt.Errorf("create %s: %w", childDir, err)
		}

		if err := e.exportLevel(st, childDir, el.Children, newNameAllocator(e.proj)); err != nil {
			return err
		}
	}

	return nil
}

func (e *exporter) native(st *exportState, rel string) m.Path {
	return e.fs.JoinPath(string(st.folder), string(m.Path(rel).Native()))
}

func (e *exporter) exportElement(st *exportState, dir, base string, el *m.Element) error {
	st.stats.Elements++

	scriptName, isScript := e.proj.ScriptFile(base, el.Class)

	var source *m.Property
	if isScript {
		source = scriptSource(el)
		if source == nil {
			e.logger.Debug("script has no editable Source", zap.String("referent", el.Referent))
		}
	}

	assignments, hidden := exportedProperties(el, source)

	text := literal.Render(literal.Header{
		Class:    el.Class,
		Name:     el.Name,
		Referent: el.Referent,
		Hidden:   hidden,
	}, assignments)

	propRel := path.Join(dir, e.proj.PropertyFile(base, el.Class))
	if err := e.fs.WriteFile(e.native(st, propRel), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", propRel, err)
	}

	st.stats.PropertyFiles++
	st.em.Add(m.MapEntry{
		Path:               m.Path(propRel),
		Referent:           el.Referent,
		Class:              el.Class,
		Kind:               m.EntryProperties,
		OriginalProperties: text,
	})

	if source == nil {
		return nil
	}

	body := m.NormalizeNewlines(stringValue(source.Value))
	scriptRel := path.Join(dir, scriptName)

	if err := e.fs.WriteFile(e.native(st, scriptRel), []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", scriptRel, err)
	}

	st.stats.Scripts++
	st.em.Add(m.MapEntry{
		Path:           m.Path(scriptRel),
		Referent:       el.Referent,
		Class:          el.Class,
		Kind:           m.EntryScript,
		OriginalScript: body,
	})

	e.logger.Debug("exported script", zap.String("path", scriptRel), zap.String("referent", el.Referent))

	return nil
}

// exportedProperties renders the editable properties of el sorted by name.
// Only the first property of each name is editable; opaque properties,
// properties whose name cannot be written as an assignment and the script
// source are counted as hidden.
func exportedProperties(el *m.Element, source *m.Property) ([]literal.Assignment, int) {
	var (
		assignments []literal.Assignment
		hidden      int
	)

	for _, p := range el.Properties {
		if p == source || editableProperty(el, p.Name) != p {
			if p != source {
				hidden++
			}

			continue
		}

		text, err := literal.ToLiteral(p.Kind, p.Value)
		if err != nil {
			hidden++
			continue
		}

		assignments = append(assignments, literal.Assignment{Name: p.Name, Literal: text})
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Name < assignments[j].Name
	})

	return assignments, hidden
}

// editableProperty returns the property that an assignment named name edits.
func editableProperty(el *m.Element, name string) *m.Property {
	if !literal.IsName(name) {
		return nil
	}

	p := el.Property(name)
	if p == nil || p.Opaque {
		return nil
	}

	return p
}

// scriptSource returns the Source property holding a script body.
func scriptSource(el *m.Element) *m.Property {
	p := el.Property("Source")
	if p == nil || p.Opaque {
		return nil
	}

	if p.Kind != m.KindProtectedString && p.Kind != m.KindString {
		return nil
	}

	return p
}

func stringValue(v m.Value) string {
	switch v := v.(type) {
	case m.ValueString:
		return string(v)
	case m.ValueProtectedString:
		return string(v)
	}

	return ""
}
