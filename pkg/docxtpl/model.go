package docxtpl

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// The body model keeps the OOXML structure the renderer needs to walk:
// paragraphs, runs, and tables, with their children in document order.
// Formatting properties (pPr, rPr, tblPr, ...) are carried as verbatim
// inner XML, and any child element the model does not represent
// (hyperlinks, bookmarks, tabs, drawings) is carried as a verbatim
// RawElement, so the template's styling and extra content survive a
// parse/render/write round trip untouched.

// Body represents the document body
type Body struct {
	// Elements maintains the order of paragraphs, tables, and raw content
	Elements []BodyElement
	// SectPr holds the trailing section properties verbatim
	SectPr *RawProps
}

// BodyElement represents any element that can appear in a document body
// or a table cell
type BodyElement interface {
	isBodyElement()
}

// ParagraphChild represents any child element of a paragraph
type ParagraphChild interface {
	isParagraphChild()
}

// RunChild represents any child element of a run
type RunChild interface {
	isRunChild()
}

// TableChild represents any child element of a table
type TableChild interface {
	isTableChild()
}

// RowChild represents any child element of a table row
type RowChild interface {
	isRowChild()
}

// RawProps holds a formatting properties element's inner XML verbatim
type RawProps struct {
	Inner []byte
}

// RawElement holds a complete child element the model does not represent,
// sliced verbatim from the template source. It is written back byte for
// byte, so hyperlinks, bookmarks, tabs, and drawings pass through
// rendering untouched.
type RawElement struct {
	// Name is the element's local name, kept for error messages
	Name string
	XML  []byte
}

func (*RawElement) isBodyElement()    {}
func (*RawElement) isParagraphChild() {}
func (*RawElement) isRunChild()       {}
func (*RawElement) isTableChild()     {}
func (*RawElement) isRowChild()       {}

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Props    *RawProps
	Children []ParagraphChild
}

func (*Paragraph) isBodyElement() {}

// Run represents a run of text with common formatting
type Run struct {
	Props    *RawProps
	Children []RunChild
}

func (*Run) isParagraphChild() {}

// Text represents text content of a run
type Text struct {
	Space   string `xml:"space,attr"`
	Content string `xml:",chardata"`
}

func (*Text) isRunChild() {}

// Break represents a line or page break
type Break struct {
	Type string `xml:"type,attr"`
}

func (*Break) isRunChild() {}

// Table represents a table in the document
type Table struct {
	Props    *RawProps
	Grid     *RawProps
	Children []TableChild
}

func (*Table) isBodyElement() {}

// TableRow represents a row in a table
type TableRow struct {
	Props    *RawProps
	Children []RowChild
}

func (*TableRow) isTableChild() {}

// TableCell represents a cell in a table. Cells hold block content:
// paragraphs, nested tables, and raw elements.
type TableCell struct {
	Props   *RawProps
	Content []BodyElement
}

func (*TableCell) isRowChild() {}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, child := range r.Children {
		if t, ok := child.(*Text); ok {
			sb.WriteString(t.Content)
		}
	}
	return sb.String()
}

// GetText returns the concatenated text of all runs in a paragraph.
// Text inside raw children does not contribute.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, child := range p.Children {
		if r, ok := child.(*Run); ok {
			sb.WriteString(r.GetText())
		}
	}
	return sb.String()
}

// unsupportedContent returns the local name of the first paragraph or run
// child that placeholder substitution cannot rebuild around. Substitution
// rewrites a paragraph from its merged run text, which is only safe when
// every child is a run of plain text.
func (p *Paragraph) unsupportedContent() (string, bool) {
	for _, child := range p.Children {
		switch c := child.(type) {
		case *Run:
			for _, rc := range c.Children {
				switch r := rc.(type) {
				case *Text:
				case *Break:
					return "br", true
				case *RawElement:
					return r.Name, true
				}
			}
		case *RawElement:
			return c.Name, true
		}
	}
	return "", false
}

// bodyParser decodes word/document.xml while keeping the original source
// bytes at hand, so elements outside the model can be sliced out verbatim
// by input offset.
type bodyParser struct {
	dec *xml.Decoder
	src []byte
}

// parseBody extracts and parses the body of a word/document.xml part
func parseBody(documentXML []byte) (*Body, error) {
	p := &bodyParser{
		dec: xml.NewDecoder(bytes.NewReader(documentXML)),
		src: documentXML,
	}

	root := false
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("document has no body")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !root {
			if start.Name.Local != "document" {
				return nil, fmt.Errorf("unexpected root element %q", start.Name.Local)
			}
			root = true
			continue
		}
		if start.Name.Local == "body" {
			return p.parseBodyContent()
		}
		if err := p.dec.Skip(); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	}
}

func (p *bodyParser) parseBodyContent() (*Body, error) {
	body := &Body{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para, err := p.parseParagraph()
				if err != nil {
					return nil, err
				}
				body.Elements = append(body.Elements, para)
			case "tbl":
				tbl, err := p.parseTable()
				if err != nil {
					return nil, err
				}
				body.Elements = append(body.Elements, tbl)
			case "sectPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				body.SectPr = &RawProps{Inner: inner}
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				body.Elements = append(body.Elements, raw)
			}
		case xml.EndElement:
			return body, nil
		}
	}
}

func (p *bodyParser) parseParagraph() (*Paragraph, error) {
	para := &Paragraph{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				para.Props = &RawProps{Inner: inner}
			case "r":
				run, err := p.parseRun()
				if err != nil {
					return nil, err
				}
				para.Children = append(para.Children, run)
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				para.Children = append(para.Children, raw)
			}
		case xml.EndElement:
			return para, nil
		}
	}
}

func (p *bodyParser) parseRun() (*Run, error) {
	run := &Run{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				run.Props = &RawProps{Inner: inner}
			case "t":
				var txt Text
				if err := p.dec.DecodeElement(&txt, &t); err != nil {
					return nil, err
				}
				run.Children = append(run.Children, &txt)
			case "br":
				var br Break
				if err := p.dec.DecodeElement(&br, &t); err != nil {
					return nil, err
				}
				run.Children = append(run.Children, &br)
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				run.Children = append(run.Children, raw)
			}
		case xml.EndElement:
			return run, nil
		}
	}
}

func (p *bodyParser) parseTable() (*Table, error) {
	tbl := &Table{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				tbl.Props = &RawProps{Inner: inner}
			case "tblGrid":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				tbl.Grid = &RawProps{Inner: inner}
			case "tr":
				row, err := p.parseRow()
				if err != nil {
					return nil, err
				}
				tbl.Children = append(tbl.Children, row)
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				tbl.Children = append(tbl.Children, raw)
			}
		case xml.EndElement:
			return tbl, nil
		}
	}
}

func (p *bodyParser) parseRow() (*TableRow, error) {
	row := &TableRow{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				row.Props = &RawProps{Inner: inner}
			case "tc":
				cell, err := p.parseCell()
				if err != nil {
					return nil, err
				}
				row.Children = append(row.Children, cell)
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				row.Children = append(row.Children, raw)
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

func (p *bodyParser) parseCell() (*TableCell, error) {
	cell := &TableCell{}
	for {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				inner, err := p.rawInner()
				if err != nil {
					return nil, err
				}
				cell.Props = &RawProps{Inner: inner}
			case "p":
				para, err := p.parseParagraph()
				if err != nil {
					return nil, err
				}
				cell.Content = append(cell.Content, para)
			case "tbl":
				tbl, err := p.parseTable()
				if err != nil {
					return nil, err
				}
				cell.Content = append(cell.Content, tbl)
			default:
				raw, err := p.rawElement(off, t.Name.Local)
				if err != nil {
					return nil, err
				}
				cell.Content = append(cell.Content, raw)
			}
		case xml.EndElement:
			return cell, nil
		}
	}
}

// rawInner consumes the element whose start tag was just read and returns
// its inner XML sliced verbatim from the source
func (p *bodyParser) rawInner() ([]byte, error) {
	start := p.dec.InputOffset()
	end := start
	depth := 1
	for depth > 0 {
		off := p.dec.InputOffset()
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				end = off
			}
		}
	}
	return p.src[start:end], nil
}

// rawElement consumes the element whose start tag was just read at start
// and returns its complete source bytes, closing tag included
func (p *bodyParser) rawElement(start int64, name string) (*RawElement, error) {
	if err := p.dec.Skip(); err != nil {
		return nil, err
	}
	return &RawElement{Name: name, XML: p.src[start:p.dec.InputOffset()]}, nil
}

// documentEnvelope extracts the XML declaration and the opening
// <w:document ...> tag verbatim from the original part, so the namespace
// declarations Word wrote survive unchanged.
func documentEnvelope(documentXML []byte) (string, error) {
	content := string(documentXML)

	searchStart := 0
	if declEnd := strings.Index(content, "?>"); declEnd != -1 && strings.HasPrefix(strings.TrimSpace(content), "<?xml") {
		searchStart = declEnd + 2
	}

	openStart := strings.Index(content[searchStart:], "<")
	if openStart == -1 {
		return "", fmt.Errorf("malformed XML: no root tag found")
	}
	openStart += searchStart

	openEnd := strings.Index(content[openStart:], ">")
	if openEnd == -1 {
		return "", fmt.Errorf("malformed XML: no opening tag end found")
	}
	openEnd += openStart

	return content[openStart : openEnd+1], nil
}

// escapeText escapes text content for inclusion in XML character data
func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
