package domain

import (
	"strconv"
	"strings"

	"github.com/mouse-blink/placefold/internal/adapter"
	m "github.com/mouse-blink/placefold/internal/model"
)

const unnamedBase = "unnamed"

// SanitizeName turns an element name into a base name that is valid on common
// file systems.
func SanitizeName(name string) string {
	var b strings.Builder

	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteByte('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	s := strings.TrimRight(b.String(), ". ")
	if s == "" || s == "." || s == ".." {
		return unnamedBase
	}

	return s
}

// Projection decides the file names an element is exported to.
type Projection struct {
	cfg m.Config
}

// NewProjection constructs a Projection over the extension catalog in cfg.
func NewProjection(cfg m.Config) Projection {
	return Projection{cfg: cfg}
}

// PropertyFile returns the property file name for base.
func (p Projection) PropertyFile(base, class string) string {
	return base + p.cfg.ModelExtension(class)
}

// ScriptFile returns the script file name for base, if class is a script.
func (p Projection) ScriptFile(base, class string) (string, bool) {
	if !p.cfg.IsScript(class) {
		return "", false
	}

	return base + p.cfg.ScriptExtension(class), true
}

// outputs lists every directory entry el would occupy under base.
func (p Projection) outputs(el *m.Element, base string) []string {
	names := []string{p.PropertyFile(base, el.Class)}

	if script, ok := p.ScriptFile(base, el.Class); ok {
		names = append(names, script)
	}

	if len(el.Children) > 0 {
		names = append(names, base)
	}

	return names
}

// IsProjected reports whether a file name looks like an exported file.
func (p Projection) IsProjected(name string) bool {
	if strings.HasSuffix(name, p.cfg.ModelSuffix) {
		stem := strings.TrimSuffix(name, p.cfg.ModelSuffix)
		if strings.Contains(stem, ".") {
			return true
		}
	}

	for class := range p.cfg.ScriptExtensions {
		if strings.HasSuffix(name, p.cfg.ScriptExtension(class)) {
			return true
		}
	}

	return false
}

// nameAllocator hands out base names that are unique among siblings, ignoring
// case.
type nameAllocator struct {
	proj Projection
	used map[string]struct{}
}

func newNameAllocator(proj Projection, reserved ...string) *nameAllocator {
	a := &nameAllocator{proj: proj, used: make(map[string]struct{})}
	for _, r := range reserved {
		a.used[strings.ToLower(r)] = struct{}{}
	}

	return a
}

// allocate returns the base name for el. The first sibling keeps the sanitized
// name; later ones get " (2)", " (3)" and so on.
func (a *nameAllocator) allocate(el *m.Element) string {
	sanitized := SanitizeName(el.Name)

	for n := 1; ; n++ {
		base := sanitized
		if n > 1 {
			base = sanitized + " (" + strconv.Itoa(n) + ")"
		}

		names := a.proj.outputs(el, base)
		if a.free(names) {
			for _, name := range names {
				a.used[strings.ToLower(name)] = struct{}{}
			}

			return base
		}
	}
}

func (a *nameAllocator) free(names []string) bool {
	for _, name := range names {
		if _, taken := a.used[strings.ToLower(name)]; taken {
			return false
		}
	}

	return true
}

// rootReserved are entries of the folder root that never hold elements.
var rootReserved = []string{adapter.MetaDirName, adapter.ConfigFileName}
