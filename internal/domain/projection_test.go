package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mouse-blink/placefold/internal/adapter"
	m "github.com/mouse-blink/placefold/internal/model"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Baseplate", "Baseplate"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"tab\there\nnew", "tab_here_new"},
		{"trailing. . ", "trailing"},
		{"", "unnamed"},
		{"...", "unnamed"},
		{"  lead", "  lead"},
		{"ünïcode", "ünïcode"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestProjection_Files(t *testing.T) {
	p := NewProjection(m.DefaultConfig())

	assert.Equal(t, "Baseplate.part.model", p.PropertyFile("Baseplate", "Part"))

	name, ok := p.ScriptFile("Main", "Script")
	assert.True(t, ok)
	assert.Equal(t, "Main.server.lua", name)

	name, ok = p.ScriptFile("Util", "ModuleScript")
	assert.True(t, ok)
	assert.Equal(t, "Util.module.lua", name)

	_, ok = p.ScriptFile("Part", "Part")
	assert.False(t, ok)

	assert.True(t, p.IsProjected("Baseplate.part.model"))
	assert.True(t, p.IsProjected("Main.local.lua"))
	assert.False(t, p.IsProjected("notes.txt"))
	assert.False(t, p.IsProjected(".model"))
}

func TestNameAllocator(t *testing.T) {
	p := NewProjection(m.DefaultConfig())

	t.Run("case insensitive collisions get numbered suffixes", func(t *testing.T) {
		a := newNameAllocator(p)

		assert.Equal(t, "Part", a.allocate(&m.Element{Name: "Part", Class: "Part"}))
		assert.Equal(t, "part (2)", a.allocate(&m.Element{Name: "part", Class: "Part"}))
		assert.Equal(t, "PART (3)", a.allocate(&m.Element{Name: "PART", Class: "Part"}))
	})

	t.Run("different classes do not collide", func(t *testing.T) {
		a := newNameAllocator(p)

		assert.Equal(t, "Thing", a.allocate(&m.Element{Name: "Thing", Class: "Part"}))
		assert.Equal(t, "Thing", a.allocate(&m.Element{Name: "Thing", Class: "Model"}))
	})

	t.Run("directory of one sibling clashing with a file of another", func(t *testing.T) {
		a := newNameAllocator(p)

		assert.Equal(t, "Main", a.allocate(&m.Element{Name: "Main", Class: "Script"}))

		withChildren := &m.Element{Name: "Main.server.lua", Class: "Folder", Children: []*m.Element{{}}}
		assert.Equal(t, "Main.server.lua (2)", a.allocate(withChildren))
	})

	t.Run("sanitized names collide too", func(t *testing.T) {
		a := newNameAllocator(p)

		assert.Equal(t, "a_b", a.allocate(&m.Element{Name: "a/b", Class: "Part"}))
		assert.Equal(t, "a_b (2)", a.allocate(&m.Element{Name: "a:b", Class: "Part"}))
	})

	t.Run("reserved root entries", func(t *testing.T) {
		a := newNameAllocator(p, rootReserved...)

		el := &m.Element{Name: adapter.MetaDirName, Class: "Folder", Children: []*m.Element{{}}}
		assert.Equal(t, adapter.MetaDirName+" (2)", a.allocate(el))
	})
}
