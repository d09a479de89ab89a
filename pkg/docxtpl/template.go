package docxtpl

import (
	"sort"
)

// Template is a parsed DOCX template. It is loaded once at startup, never
// mutated afterwards, and safe for unsynchronized concurrent Render calls.
type Template struct {
	reader   *docxReader
	envelope string
	body     *Body
}

// Open loads and parses a template from a file path
func Open(path string) (*Template, error) {
	source, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(source)
}

// Parse parses a template from DOCX bytes. Structural problems with the
// template, such as unbalanced block markers, are reported here rather than
// on first render.
func Parse(source []byte) (*Template, error) {
	reader, err := newDocxReader(source)
	if err != nil {
		return nil, NewDocumentError("parse", "DOCX", err)
	}

	docXML, err := reader.documentXML()
	if err != nil {
		return nil, NewDocumentError("extract", "word/document.xml", err)
	}

	envelope, err := documentEnvelope(docXML)
	if err != nil {
		return nil, NewTemplateError("%s", err.Error())
	}

	body, err := parseBody(docXML)
	if err != nil {
		return nil, NewDocumentError("parse", "document structure", err)
	}

	tpl := &Template{
		reader:   reader,
		envelope: envelope,
		body:     body,
	}

	if err := tpl.validate(); err != nil {
		return nil, err
	}

	return tpl, nil
}

// validate checks the template up front, so a broken one is rejected at
// load time instead of failing every render: block markers must balance,
// placeholders must not sit next to content substitution cannot rebuild,
// and tokens must not hide inside raw content the renderer never scans.
func (t *Template) validate() error {
	var rawErr error
	walkRaw(t.body, func(raw *RawElement) {
		if rawErr == nil && tokenRegex.Match(raw.XML) {
			rawErr = NewTemplateError("token inside unsupported %q content", raw.Name)
		}
	})
	if rawErr != nil {
		return rawErr
	}

	blocks := make(Blocks)
	for _, name := range t.Blocks() {
		blocks[name] = true
	}

	values := make(Values)
	for _, name := range t.Placeholders() {
		values[name] = ""
	}

	_, err := renderBody(t.body, values, blocks)
	return err
}

// Render produces a complete DOCX document with every placeholder replaced
// by its value and only the named conditional blocks retained. Identical
// inputs yield identical output bytes.
func (t *Template) Render(values Values, blocks Blocks) ([]byte, error) {
	if t == nil || t.body == nil {
		return nil, NewTemplateError("invalid or nil template")
	}
	if values == nil {
		values = Values{}
	}
	if blocks == nil {
		blocks = Blocks{}
	}

	rendered, err := renderBody(t.body, values, blocks)
	if err != nil {
		return nil, err
	}

	documentXML := writeDocumentXML(t.envelope, rendered)

	out, err := t.reader.repackage(documentXML)
	if err != nil {
		return nil, NewDocumentError("package", "word/document.xml", err)
	}

	return out, nil
}

// Placeholders returns the sorted set of placeholder names the template
// references, including those inside conditional blocks.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	walkText(t.body, func(text string) {
		for _, token := range Tokenize(text) {
			if token.Type == TokenPlaceholder {
				seen[token.Value] = true
			}
		}
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blocks returns the sorted set of conditional block names the template
// defines.
func (t *Template) Blocks() []string {
	seen := make(map[string]bool)
	walkText(t.body, func(text string) {
		for _, token := range Tokenize(text) {
			if token.Type == TokenBlockStart {
				seen[token.Value] = true
			}
		}
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// walkText visits the merged text of every paragraph in the body,
// table cells and nested tables included
func walkText(body *Body, visit func(string)) {
	if body == nil {
		return
	}
	walkTextElements(body.Elements, visit)
}

func walkTextElements(elems []BodyElement, visit func(string)) {
	for _, elem := range elems {
		switch el := elem.(type) {
		case *Paragraph:
			visit(el.GetText())
		case *Table:
			for _, child := range el.Children {
				row, ok := child.(*TableRow)
				if !ok {
					continue
				}
				for _, rowChild := range row.Children {
					if cell, ok := rowChild.(*TableCell); ok {
						walkTextElements(cell.Content, visit)
					}
				}
			}
		}
	}
}

// walkRaw visits every raw element the body carries, at any depth
func walkRaw(body *Body, visit func(*RawElement)) {
	if body == nil {
		return
	}
	walkRawElements(body.Elements, visit)
}

func walkRawElements(elems []BodyElement, visit func(*RawElement)) {
	for _, elem := range elems {
		switch el := elem.(type) {
		case *Paragraph:
			for _, child := range el.Children {
				switch c := child.(type) {
				case *Run:
					for _, rc := range c.Children {
						if raw, ok := rc.(*RawElement); ok {
							visit(raw)
						}
					}
				case *RawElement:
					visit(c)
				}
			}
		case *Table:
			for _, child := range el.Children {
				switch c := child.(type) {
				case *TableRow:
					for _, rowChild := range c.Children {
						switch rc := rowChild.(type) {
						case *TableCell:
							walkRawElements(rc.Content, visit)
						case *RawElement:
							visit(rc)
						}
					}
				case *RawElement:
					visit(c)
				}
			}
		case *RawElement:
			visit(el)
		}
	}
}
