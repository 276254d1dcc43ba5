package adapter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	m "github.com/mouse-blink/placefold/internal/model"
	"go.uber.org/zap"
)

// PlaceFileAdapter parses place documents into element trees with exact byte
// spans and serializes typed values back into their native XML form.
type PlaceFileAdapter interface {
	// Parse builds the element tree. Elements missing identity attributes are
	// skipped with a warning; a document that is not well-formed is fatal.
	Parse(text []byte) (*m.Document, []m.Warning, error)

	// SerializeProperty renders a complete property element.
	SerializeProperty(tag, name string, value m.Value) (string, error)

	// EncodeValue renders the inner text of a scalar property.
	EncodeValue(value m.Value) (string, error)

	// EncodeField renders the inner text of one composite field element.
	EncodeField(value m.Value, field string) (string, error)

	// EncodeScript renders a script body as the inner content of its Source property.
	EncodeScript(body string, cdata, crlf bool) string
}

// LocalPlaceFileAdapter implements PlaceFileAdapter on top of encoding/xml.
type LocalPlaceFileAdapter struct {
	logger *zap.Logger
}

// NewLocalPlaceFileAdapter constructs a LocalPlaceFileAdapter.
func NewLocalPlaceFileAdapter(logger *zap.Logger) *LocalPlaceFileAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LocalPlaceFileAdapter{logger: logger}
}

// placeParser holds the state of one Parse call.
type placeParser struct {
	dec      *xml.Decoder
	text     []byte
	doc      *m.Document
	warnings []m.Warning
	logger   *zap.Logger
}

// Parse reads text into a Document. The returned document keeps a reference to
// text, which must not be modified afterwards.
func (a *LocalPlaceFileAdapter) Parse(text []byte) (*m.Document, []m.Warning, error) {
	p := &placeParser{
		dec:  xml.NewDecoder(bytes.NewReader(text)),
		text: text,
		doc: &m.Document{
			Text:       text,
			ByReferent: make(map[string]*m.Element),
		},
		logger: a.logger,
	}

	if err := p.parse(); err != nil {
		return nil, p.warnings, err
	}

	return p.doc, p.warnings, nil
}

// next reads one token and reports the byte range it occupied.
func (p *placeParser) next() (xml.Token, m.Span, error) {
	start := int(p.dec.InputOffset())

	tok, err := p.dec.Token()
	if err != nil {
		return nil, m.Span{Start: start, End: start}, err
	}

	return tok, m.Span{Start: start, End: int(p.dec.InputOffset())}, nil
}

func (p *placeParser) malformed(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return &m.MalformedDocumentError{Offset: p.dec.InputOffset(), Err: err}
}

func (p *placeParser) warn(code m.WarningCode, referent, format string, args ...any) {
	p.warnings = append(p.warnings, m.Warning{
		Code:     code,
		Referent: referent,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *placeParser) parse() error {
	for {
		tok, _, err := p.next()
		if errors.Is(err, io.EOF) {
			return &m.MalformedDocumentError{Offset: p.dec.InputOffset(), Err: errors.New("document has no root element")}
		}

		if err != nil {
			return p.malformed(err)
		}

		if se, ok := tok.(xml.StartElement); ok {
			p.doc.RootTag = se.Name.Local
			break
		}
	}

	if err := p.parseContainer(nil); err != nil {
		return err
	}

	// Anything after the root must still be well-formed.
	for {
		_, _, err := p.next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return p.malformed(err)
		}
	}
}

// parseContainer consumes the content of the root or of an Item up to and
// including its end tag.
func (p *placeParser) parseContainer(parent *m.Element) error {
	for {
		tok, span, err := p.next()
		if err != nil {
			return p.malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "Item":
				el, err := p.parseItem(t, span.Start)
				if err != nil {
					return err
				}

				if el == nil {
					continue
				}

				el.Parent = parent
				if parent == nil {
					p.doc.Roots = append(p.doc.Roots, el)
				} else {
					parent.Children = append(parent.Children, el)
				}
			case t.Name.Local == "Properties" && parent != nil && parent.PropertiesSpan == (m.Span{}):
				if err := p.parseProperties(parent, span.Start); err != nil {
					return err
				}
			default:
				if err := p.dec.Skip(); err != nil {
					return p.malformed(err)
				}
			}
		case xml.EndElement:
			if parent != nil {
				parent.Span.End = span.End
			}

			return nil
		}
	}
}

func (p *placeParser) parseItem(se xml.StartElement, start int) (*m.Element, error) {
	class := attrValue(se, "class")
	referent := attrValue(se, "referent")

	if class == "" || referent == "" {
		p.warn(m.WarnMalformedElement, referent, "item at byte %d lacks a class or referent attribute; skipped", start)
		return nil, p.skip()
	}

	if _, dup := p.doc.ByReferent[referent]; dup {
		p.warn(m.WarnMalformedElement, referent, "item at byte %d repeats referent %q; skipped", start, referent)
		return nil, p.skip()
	}

	el := &m.Element{
		Class:    class,
		Referent: referent,
		Name:     "Unnamed",
		Span:     m.Span{Start: start},
	}
	p.doc.ByReferent[referent] = el

	if err := p.parseContainer(el); err != nil {
		return nil, err
	}

	if name := el.Property("Name"); name != nil {
		if v, ok := name.Value.(m.ValueString); ok && v != "" {
			el.Name = string(v)
		}
	}

	return el, nil
}

func (p *placeParser) skip() error {
	if err := p.dec.Skip(); err != nil {
		return p.malformed(err)
	}

	return nil
}

func (p *placeParser) parseProperties(el *m.Element, start int) error {
	el.PropertiesSpan.Start = start

	for {
		tok, span, err := p.next()
		if err != nil {
			return p.malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			prop, err := p.parseProperty(el, t, span)
			if err != nil {
				return err
			}

			if prop != nil {
				el.Properties = append(el.Properties, prop)
			}
		case xml.EndElement:
			el.PropertiesSpan.End = span.End
			return nil
		}
	}
}

// fieldContent is the decoded text of one composite field element.
type fieldContent struct {
	text        string
	inner       m.Span
	selfClosing bool
}

func (p *placeParser) parseProperty(el *m.Element, se xml.StartElement, startTag m.Span) (*m.Property, error) {
	name, ok := attrPresent(se, "name")
	if !ok {
		p.warn(m.WarnMalformedElement, el.Referent, "property <%s> at byte %d has no name; skipped", se.Name.Local, startTag.Start)
		return nil, p.skip()
	}

	prop := &m.Property{
		Name: name,
		Tag:  se.Name.Local,
		Span: m.Span{Start: startTag.Start},
	}

	var (
		text   strings.Builder
		fields = make(map[string]fieldContent)
		nested bool
	)

	for {
		tok, span, err := p.next()
		if err != nil {
			return nil, p.malformed(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			nested = true

			fc, deep, err := p.readField(span)
			if err != nil {
				return nil, err
			}

			if _, seen := fields[t.Name.Local]; !seen && !deep {
				fields[t.Name.Local] = fc
			}
		case xml.EndElement:
			prop.Span.End = span.End
			prop.InnerSpan = m.Span{Start: startTag.End, End: span.Start}
			prop.SelfClosing = isSelfClosing(p.text, startTag)
			p.decode(el, prop, text.String(), fields, nested)

			return prop, nil
		}
	}
}

// readField consumes a composite field element whose start tag spanned
// startTag. deep is set when the field itself has child elements.
func (p *placeParser) readField(startTag m.Span) (fieldContent, bool, error) {
	var (
		text strings.Builder
		deep bool
	)

	for {
		tok, span, err := p.next()
		if err != nil {
			return fieldContent{}, false, p.malformed(err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			deep = true

			if err := p.skip(); err != nil {
				return fieldContent{}, false, err
			}
		case xml.EndElement:
			return fieldContent{
				text:        text.String(),
				inner:       m.Span{Start: startTag.End, End: span.Start},
				selfClosing: isSelfClosing(p.text, startTag),
			}, deep, nil
		}
	}
}

func (p *placeParser) decode(el *m.Element, prop *m.Property, text string, fields map[string]fieldContent, nested bool) {
	kind, ok := m.KindFromTag(prop.Tag)
	if !ok {
		prop.Opaque = true
		return
	}

	prop.Kind = kind

	var (
		value m.Value
		err   error
	)

	if nativeComposite(kind) {
		value, err = decodeComposite(kind, fields)
		if err == nil {
			prop.Fields = make(map[string]m.Span, len(fields))

			for _, f := range m.Fields(kind) {
				fc := fields[f.Name]
				prop.Fields[f.Name] = fc.inner
				prop.SelfClosing = prop.SelfClosing || fc.selfClosing
			}
		}
	} else {
		if nested {
			err = errors.New("unexpected child elements")
		} else {
			value, err = decodeScalar(kind, text)
		}
	}

	if err != nil {
		prop.Opaque = true

		p.logger.Debug("keeping property opaque",
			zap.String("referent", el.Referent),
			zap.String("property", prop.Name),
			zap.String("tag", prop.Tag),
			zap.Error(err))

		return
	}

	prop.Value = value
	inner := bytes.TrimLeft(p.text[prop.InnerSpan.Start:prop.InnerSpan.End], " \t\r\n")
	prop.CDATA = bytes.HasPrefix(inner, []byte("<![CDATA["))
}

func attrValue(se xml.StartElement, name string) string {
	v, _ := attrPresent(se, name)
	return v
}

func attrPresent(se xml.StartElement, name string) (string, bool) {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}

	return "", false
}

// isSelfClosing reports whether a start tag was written as <tag/>.
func isSelfClosing(text []byte, startTag m.Span) bool {
	return startTag.End-startTag.Start >= 2 && bytes.HasSuffix(text[startTag.Start:startTag.End], []byte("/>"))
}
