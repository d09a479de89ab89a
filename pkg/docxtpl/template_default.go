package docxtpl

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// DefaultTemplate returns the built-in base agreement template as DOCX
// bytes. It defines every placeholder and conditional block the assembly
// engine can produce, so the service runs without a template file on disk.
// A template configured by the operator replaces it wholesale.
func DefaultTemplate() []byte {
	var body strings.Builder

	body.WriteString(heading("Master Service Agreement"))
	body.WriteString(para("{{current_month_year}}"))
	body.WriteString(para(""))
	body.WriteString(para("This Master Service Agreement describes the managed services, " +
		"support commitments, and pricing prepared for the client named below. " +
		"It forms the basis of our partnership on the journey to IT maturity."))
	body.WriteString(para(""))

	body.WriteString(boldPara("Prepared For:"))
	body.WriteString(para("{{client_name}}"))
	body.WriteString(para("{{client_email}}"))
	body.WriteString(para("{{client_address}}"))
	body.WriteString(para("{{client_phone}}"))
	body.WriteString(para(""))
	body.WriteString(boldPara("Prepared By:"))
	body.WriteString(para("{{preparer_name}}"))
	body.WriteString(para("{{preparer_email}}"))
	body.WriteString(para(""))
	body.WriteString(para("Effective {{current_date}}."))
	body.WriteString(para(""))

	body.WriteString(heading("Monthly Service Pricing"))

	body.WriteString(para("{{#block workstation_pricing}}"))
	body.WriteString(para("Pricing is calculated per managed workstation. " +
		"Each covered workstation receives monitoring, patching, endpoint " +
		"protection, and unlimited remote support."))
	body.WriteString(pricingTable("Managed Workstations"))
	body.WriteString(para("{{pricing_summary}}"))
	body.WriteString(para("{{/block workstation_pricing}}"))

	body.WriteString(para("{{#block user_pricing}}"))
	body.WriteString(para("Pricing is calculated per supported user. Each " +
		"covered user receives helpdesk access, identity management, and " +
		"support across all of their devices."))
	body.WriteString(pricingTable("Supported Users"))
	body.WriteString(para("{{pricing_summary}}"))
	body.WriteString(para("{{/block user_pricing}}"))

	body.WriteString(para("{{#block compliance_services}}"))
	body.WriteString(heading("Compliance Services"))
	body.WriteString(para("Ongoing compliance management is included in this " +
		"agreement: framework gap assessments, policy development, evidence " +
		"collection, and audit readiness reviews."))
	body.WriteString(para("{{/block compliance_services}}"))

	body.WriteString(para("{{#block security_plus_services}}"))
	body.WriteString(heading("Security Plus Services"))
	body.WriteString(para("The Security Plus package is included in this " +
		"agreement: managed detection and response, security awareness " +
		"training, and quarterly posture reviews."))
	body.WriteString(para("{{/block security_plus_services}}"))

	body.WriteString(para(""))
	body.WriteString(heading("Acceptance"))
	body.WriteString(para("Agreed and accepted by {{client_name}}:"))
	body.WriteString(para(""))
	body.WriteString(para("Signature: ____________________________  Date: ______________"))

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`

	return packageDocx(documentXML)
}

func para(text string) string {
	if text == "" {
		return "<w:p/>"
	}
	return "<w:p><w:r><w:t xml:space=\"preserve\">" + escapeText(text) + "</w:t></w:r></w:p>"
}

func boldPara(text string) string {
	return "<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space=\"preserve\">" + escapeText(text) + "</w:t></w:r></w:p>"
}

func heading(text string) string {
	return `<w:p><w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr>` +
		`<w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">` +
		escapeText(text) + "</w:t></w:r></w:p>"
}

func pricingTable(label string) string {
	cell := func(text string) string {
		return "<w:tc>" + para(text) + "</w:tc>"
	}
	headerCell := func(text string) string {
		return "<w:tc>" + boldPara(text) + "</w:tc>"
	}

	return `<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>` +
		`<w:tblGrid><w:gridCol w:w="4000"/><w:gridCol w:w="1500"/><w:gridCol w:w="1800"/><w:gridCol w:w="1800"/></w:tblGrid>` +
		"<w:tr>" +
		headerCell("Service") + headerCell("Quantity") + headerCell("Unit Price") + headerCell("Monthly Total") +
		"</w:tr>" +
		"<w:tr>" +
		cell(label) + cell("{{unit_count}}") + cell("{{unit_price}}") + cell("{{monthly_total}}") +
		"</w:tr>" +
		"</w:tbl>"
}

// packageDocx wraps a document.xml part in a minimal DOCX package
func packageDocx(documentXML string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	wordRels, _ := w.Create("word/_rels/document.xml.rels")
	io.WriteString(wordRels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, documentXML)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	w.Close()
	return buf.Bytes()
}
