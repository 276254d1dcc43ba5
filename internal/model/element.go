package model

// Span is a half-open byte range [Start, End) in the original document text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Valid reports whether the span is well-formed and lies within a text of length n.
func (s Span) Valid(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Property is one typed entry of an element's Properties block.
type Property struct {
	Name  string
	Tag   string // XML tag as written
	Kind  Kind
	Value Value

	// Opaque properties use a tag outside the supported kinds or carry content
	// that could not be decoded. They are preserved but never exported.
	Opaque bool

	// CDATA is set when the inner content starts with a CDATA section.
	CDATA bool

	// SelfClosing is set when the property, or one of its field elements, is
	// written as an empty-element tag and has no inner span to patch.
	SelfClosing bool

	Span      Span            // whole property element
	InnerSpan Span            // content between the start and end tags
	Fields    map[string]Span // inner spans of composite field elements
}

// Element is one object node of the document tree.
type Element struct {
	Class      string
	Referent   string
	Name       string
	Properties []*Property
	Children   []*Element
	Parent     *Element

	Span           Span // the whole <Item> element
	PropertiesSpan Span // the <Properties> block, zero when absent
}

// Property returns the first property with the given name.
func (e *Element) Property(name string) *Property {
	for _, p := range e.Properties {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// Document is a parsed place file together with the text it was parsed from.
type Document struct {
	Text       []byte
	RootTag    string
	Roots      []*Element
	ByReferent map[string]*Element
}

// Lookup finds an element by referent.
func (d *Document) Lookup(referent string) (*Element, bool) {
	el, ok := d.ByReferent[referent]
	return el, ok
}

// Walk visits every element depth-first in document order. Returning false
// from fn skips the element's children.
func (d *Document) Walk(fn func(el *Element) bool) {
	var visit func(els []*Element)

	visit = func(els []*Element) {
		for _, el := range els {
			if fn(el) {
				visit(el.Children)
			}
		}
	}

	visit(d.Roots)
}

// SpanText returns the original text covered by s.
func (d *Document) SpanText(s Span) string {
	if !s.Valid(len(d.Text)) {
		return ""
	}

	return string(d.Text[s.Start:s.End])
}
