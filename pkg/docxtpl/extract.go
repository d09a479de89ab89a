package docxtpl

import (
	"strings"
)

// ExtractText returns the plain text of a DOCX document, one line per
// paragraph, table cells included. Used for template inspection and for
// asserting on rendered output in tests.
func ExtractText(source []byte) (string, error) {
	reader, err := newDocxReader(source)
	if err != nil {
		return "", NewDocumentError("parse", "DOCX", err)
	}

	docXML, err := reader.documentXML()
	if err != nil {
		return "", NewDocumentError("extract", "word/document.xml", err)
	}

	body, err := parseBody(docXML)
	if err != nil {
		return "", NewDocumentError("parse", "document structure", err)
	}

	var lines []string
	walkText(body, func(text string) {
		lines = append(lines, text)
	})

	return strings.Join(lines, "\n"), nil
}
