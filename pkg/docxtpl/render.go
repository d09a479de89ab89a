package docxtpl

import (
	"strings"
)

// Values maps placeholder names to the strings substituted for them.
// Every placeholder present in the template must have an entry;
// a missing entry fails the render.
type Values map[string]string

// Blocks names the conditional blocks to include in the output. Blocks not
// present (or set to false) are removed entirely, marker paragraphs included.
type Blocks map[string]bool

// blockFrame tracks one open conditional block during a body walk
type blockFrame struct {
	name    string
	skipped bool
}

// renderBody renders the document body. The input body is never mutated;
// untouched elements are shared with the output.
func renderBody(body *Body, values Values, blocks Blocks) (*Body, error) {
	elements, err := renderElements(body.Elements, values, blocks)
	if err != nil {
		return nil, err
	}
	return &Body{Elements: elements, SectPr: body.SectPr}, nil
}

// renderElements walks block-level content, dropping excluded conditional
// blocks and substituting placeholder tokens. Block markers scope to the
// element list they appear in and must be balanced within it; the same
// walk serves the document body and each table cell.
func renderElements(elems []BodyElement, values Values, blocks Blocks) ([]BodyElement, error) {
	var rendered []BodyElement

	var stack []blockFrame
	for _, elem := range elems {
		skipping := len(stack) > 0 && stack[len(stack)-1].skipped

		switch el := elem.(type) {
		case *Paragraph:
			marker, isMarker, err := blockMarker(el)
			if err != nil {
				return nil, err
			}
			if isMarker {
				switch marker.Type {
				case TokenBlockStart:
					stack = append(stack, blockFrame{
						name:    marker.Value,
						skipped: skipping || !blocks[marker.Value],
					})
				case TokenBlockEnd:
					if len(stack) == 0 {
						return nil, NewTemplateError("unexpected {{/block}} with no open block")
					}
					top := stack[len(stack)-1]
					if marker.Value != "" && marker.Value != top.name {
						return nil, NewTemplateError("block end %q does not match open block %q", marker.Value, top.name)
					}
					stack = stack[:len(stack)-1]
				}
				continue
			}
			if skipping {
				continue
			}
			out, err := renderParagraph(el, values)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, out)

		case *Table:
			if skipping {
				continue
			}
			out, err := renderTable(el, values, blocks)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, out)

		case *RawElement:
			if skipping {
				continue
			}
			rendered = append(rendered, el)
		}
	}

	if len(stack) > 0 {
		return nil, NewTemplateError("block %q is never closed", stack[len(stack)-1].name)
	}

	return rendered, nil
}

// renderTable renders every cell of a table; raw children pass through
func renderTable(table *Table, values Values, blocks Blocks) (*Table, error) {
	rendered := &Table{
		Props: table.Props,
		Grid:  table.Grid,
	}

	for _, child := range table.Children {
		switch c := child.(type) {
		case *TableRow:
			row := &TableRow{Props: c.Props}
			for _, rowChild := range c.Children {
				switch rc := rowChild.(type) {
				case *TableCell:
					cell, err := renderCell(rc, values, blocks)
					if err != nil {
						return nil, err
					}
					row.Children = append(row.Children, cell)
				case *RawElement:
					row.Children = append(row.Children, rc)
				}
			}
			rendered.Children = append(rendered.Children, row)
		case *RawElement:
			rendered.Children = append(rendered.Children, c)
		}
	}

	return rendered, nil
}

func renderCell(cell *TableCell, values Values, blocks Blocks) (*TableCell, error) {
	content, err := renderElements(cell.Content, values, blocks)
	if err != nil {
		return nil, err
	}

	// Word requires at least one paragraph per cell
	if len(content) == 0 {
		content = append(content, &Paragraph{})
	}

	return &TableCell{Props: cell.Props, Content: content}, nil
}

// blockMarker reports whether a paragraph is a conditional block marker.
// A marker must be the only content of its paragraph; a block token mixed
// with other text or non-text content is a template error.
func blockMarker(para *Paragraph) (Token, bool, error) {
	text := para.GetText()
	if !HasTokens(text) {
		return Token{}, false, nil
	}

	var marker Token
	found := false
	mixed := false
	for _, token := range Tokenize(text) {
		switch token.Type {
		case TokenBlockStart, TokenBlockEnd:
			if found {
				return Token{}, false, NewTemplateError("multiple block markers in one paragraph")
			}
			marker = token
			found = true
		case TokenPlaceholder:
			mixed = true
		case TokenText:
			if strings.TrimSpace(token.Value) != "" {
				mixed = true
			}
		}
	}
	if !found {
		return Token{}, false, nil
	}
	if _, other := para.unsupportedContent(); mixed || other {
		return Token{}, false, NewTemplateError("block marker %q mixed with other content", marker.Value)
	}

	return marker, true, nil
}

// renderParagraph substitutes placeholder tokens in a paragraph. Paragraphs
// without tokens are passed through untouched, raw content included.
// Substitution rebuilds the paragraph from its merged run text, keeping the
// formatting of the run each token started in, so tokens split across runs
// or text elements by Word's editing history still resolve. A paragraph
// mixing tokens with content that cannot be rebuilt that way (a hyperlink,
// tab, break, or drawing) is rejected rather than silently rewritten.
func renderParagraph(para *Paragraph, values Values) (*Paragraph, error) {
	text := para.GetText()
	if !HasTokens(text) {
		return para, nil
	}

	if name, ok := para.unsupportedContent(); ok {
		return nil, NewTemplateError("cannot substitute in a paragraph containing %q content", name)
	}

	// Map each character offset of the merged text back to the run it
	// came from, so rebuilt segments keep their original formatting.
	propsAt := runPropsIndex(para)

	rendered := &Paragraph{Props: para.Props}
	emit := func(start int, content string) {
		if content == "" {
			return
		}
		rendered.Children = append(rendered.Children, &Run{
			Props:    propsAt(start),
			Children: []RunChild{&Text{Space: "preserve", Content: content}},
		})
	}

	lastEnd := 0
	for _, match := range tokenRegex.FindAllStringSubmatchIndex(text, -1) {
		if match[0] > lastEnd {
			emit(lastEnd, text[lastEnd:match[0]])
		}

		content := strings.TrimSpace(text[match[2]:match[3]])
		if content == "" {
			// Empty {{}} stays literal, same as Tokenize
			emit(match[0], text[match[0]:match[1]])
			lastEnd = match[1]
			continue
		}
		token := parseToken(content)
		switch token.Type {
		case TokenBlockStart, TokenBlockEnd:
			// blockMarker already rejected mixed-content markers
			return nil, NewTemplateError("block marker %q mixed with other content", token.Value)
		case TokenPlaceholder:
			value, ok := values[token.Value]
			if !ok {
				return nil, NewRenderError(token.Value)
			}
			emit(match[0], value)
		default:
			emit(match[0], text[match[0]:match[1]])
		}

		lastEnd = match[1]
	}
	if lastEnd < len(text) {
		emit(lastEnd, text[lastEnd:])
	}

	// A paragraph whose only content was an empty placeholder value still
	// needs a run so its formatting survives.
	if len(rendered.Children) == 0 {
		for _, child := range para.Children {
			if run, ok := child.(*Run); ok {
				rendered.Children = append(rendered.Children, &Run{
					Props:    run.Props,
					Children: []RunChild{&Text{Space: "preserve"}},
				})
				break
			}
		}
	}

	return rendered, nil
}

// runPropsIndex returns a lookup from merged-text offset to the formatting
// properties of the run covering that offset
func runPropsIndex(para *Paragraph) func(int) *RawProps {
	type span struct {
		end   int
		props *RawProps
	}

	var spans []span
	offset := 0
	for _, child := range para.Children {
		run, ok := child.(*Run)
		if !ok {
			continue
		}
		text := run.GetText()
		if text == "" {
			continue
		}
		offset += len(text)
		spans = append(spans, span{end: offset, props: run.Props})
	}

	return func(pos int) *RawProps {
		for _, s := range spans {
			if pos < s.end {
				return s.props
			}
		}
		if len(spans) > 0 {
			return spans[len(spans)-1].props
		}
		return nil
	}
}
