package docxtpl

import (
	"bytes"
)

// writeDocumentXML serializes a rendered body back into a complete
// word/document.xml part, reusing the original document's opening tag so
// every namespace declaration Word wrote is carried over verbatim.
func writeDocumentXML(envelope string, body *Body) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	buf.WriteString(envelope)
	buf.WriteString("<w:body>")
	writeElements(&buf, body.Elements)

	if body.SectPr != nil {
		buf.WriteString("<w:sectPr>")
		buf.Write(body.SectPr.Inner)
		buf.WriteString("</w:sectPr>")
	}

	buf.WriteString("</w:body>")
	buf.WriteString("</w:document>")

	return buf.Bytes()
}

func writeElements(buf *bytes.Buffer, elems []BodyElement) {
	for _, elem := range elems {
		switch el := elem.(type) {
		case *Paragraph:
			writeParagraph(buf, el)
		case *Table:
			writeTable(buf, el)
		case *RawElement:
			buf.Write(el.XML)
		}
	}
}

func writeParagraph(buf *bytes.Buffer, para *Paragraph) {
	buf.WriteString("<w:p>")
	writeProps(buf, "w:pPr", para.Props)
	for _, child := range para.Children {
		switch c := child.(type) {
		case *Run:
			writeRun(buf, c)
		case *RawElement:
			buf.Write(c.XML)
		}
	}
	buf.WriteString("</w:p>")
}

// writeRun emits the run's children in their original document order
func writeRun(buf *bytes.Buffer, run *Run) {
	buf.WriteString("<w:r>")
	writeProps(buf, "w:rPr", run.Props)
	for _, child := range run.Children {
		switch c := child.(type) {
		case *Text:
			if c.Space == "preserve" {
				buf.WriteString(`<w:t xml:space="preserve">`)
			} else {
				buf.WriteString("<w:t>")
			}
			buf.WriteString(escapeText(c.Content))
			buf.WriteString("</w:t>")
		case *Break:
			if c.Type != "" {
				buf.WriteString(`<w:br w:type="` + c.Type + `"/>`)
			} else {
				buf.WriteString("<w:br/>")
			}
		case *RawElement:
			buf.Write(c.XML)
		}
	}
	buf.WriteString("</w:r>")
}

func writeTable(buf *bytes.Buffer, table *Table) {
	buf.WriteString("<w:tbl>")
	writeProps(buf, "w:tblPr", table.Props)
	writeProps(buf, "w:tblGrid", table.Grid)
	for _, child := range table.Children {
		switch c := child.(type) {
		case *TableRow:
			buf.WriteString("<w:tr>")
			writeProps(buf, "w:trPr", c.Props)
			for _, rowChild := range c.Children {
				switch rc := rowChild.(type) {
				case *TableCell:
					buf.WriteString("<w:tc>")
					writeProps(buf, "w:tcPr", rc.Props)
					writeElements(buf, rc.Content)
					buf.WriteString("</w:tc>")
				case *RawElement:
					buf.Write(rc.XML)
				}
			}
			buf.WriteString("</w:tr>")
		case *RawElement:
			buf.Write(c.XML)
		}
	}
	buf.WriteString("</w:tbl>")
}

// writeProps writes a properties element with its original inner XML verbatim
func writeProps(buf *bytes.Buffer, name string, props *RawProps) {
	if props == nil || len(props.Inner) == 0 {
		return
	}
	buf.WriteString("<" + name + ">")
	buf.Write(props.Inner)
	buf.WriteString("</" + name + ">")
}
