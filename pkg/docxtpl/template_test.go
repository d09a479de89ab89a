package docxtpl

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// testTemplate builds a small DOCX template from body paragraphs
func testTemplate(t *testing.T, paragraphs ...string) *Template {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(para(p))
	}
	source := packageDocx(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`)

	tpl, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tpl
}

// packageDocument wraps raw body XML in a DOCX package with the w and r
// namespaces declared
func packageDocument(bodyXML string) []byte {
	return packageDocx(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
		bodyXML + `</w:body></w:document>`)
}

func TestTemplateRenderPreservesUnmodeledContent(t *testing.T) {
	const hyperlink = `<w:hyperlink r:id="rId5"><w:r><w:t>our site</w:t></w:r></w:hyperlink>`
	const tabbedRun = `<w:t>Name:</w:t><w:tab/><w:t>Value</w:t>`
	const bookmarks = `<w:bookmarkStart w:id="1" w:name="intro"/><w:bookmarkEnd w:id="1"/>`

	source := packageDocument(
		`<w:p><w:r><w:t xml:space="preserve">Visit </w:t></w:r>` + hyperlink +
			`<w:r><w:t xml:space="preserve"> today.</w:t></w:r></w:p>` +
			`<w:p><w:r>` + tabbedRun + `</w:r></w:p>` +
			bookmarks +
			`<w:p><w:r><w:t>Prepared for {{client_name}}</w:t></w:r></w:p>`,
	)

	tpl, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := tpl.Render(Values{"client_name": "Acme Corp"}, Blocks{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	reader, err := newDocxReader(out)
	if err != nil {
		t.Fatalf("output is not a valid DOCX: %v", err)
	}
	docXML, err := reader.documentXML()
	if err != nil {
		t.Fatalf("documentXML() error = %v", err)
	}
	rendered := string(docXML)

	for _, want := range []string{hyperlink, tabbedRun, bookmarks, "Prepared for Acme Corp"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered document.xml missing %q:\n%s", want, rendered)
		}
	}
}

func TestParseRejectsTokensMixedWithUnmodeledContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "hyperlink beside placeholder",
			body: `<w:p><w:r><w:t>{{client_name}}, visit </w:t></w:r>` +
				`<w:hyperlink r:id="rId5"><w:r><w:t>our site</w:t></w:r></w:hyperlink></w:p>`,
		},
		{
			name: "tab in placeholder run",
			body: `<w:p><w:r><w:t>Name:</w:t><w:tab/><w:t>{{client_name}}</w:t></w:r></w:p>`,
		},
		{
			name: "break in placeholder paragraph",
			body: `<w:p><w:r><w:t>{{client_address}}</w:t><w:br/><w:t>{{client_phone}}</w:t></w:r></w:p>`,
		},
		{
			name: "placeholder inside hyperlink",
			body: `<w:p><w:hyperlink r:id="rId5"><w:r><w:t>{{client_name}}</w:t></w:r></w:hyperlink></w:p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(packageDocument(tt.body))
			if err == nil {
				t.Fatal("Parse() expected error for token mixed with unmodeled content")
			}
			if !IsTemplateError(err) {
				t.Errorf("Parse() error = %T, want *TemplateError", err)
			}
		})
	}
}

func TestParseRejectsInvalidPackage(t *testing.T) {
	if _, err := Parse([]byte("not a zip file")); err == nil {
		t.Fatal("Parse() expected error for non-zip input")
	}
}

func TestParseRejectsUnbalancedTemplate(t *testing.T) {
	var body strings.Builder
	body.WriteString(para("{{#block compliance_services}}"))
	body.WriteString(para("never closed"))
	source := packageDocx(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`)

	_, err := Parse(source)
	if err == nil {
		t.Fatal("Parse() expected error for unbalanced block markers")
	}
	if !IsTemplateError(err) {
		t.Errorf("Parse() error = %T, want *TemplateError", err)
	}
}

func TestTemplatePlaceholdersAndBlocks(t *testing.T) {
	tpl := testTemplate(t,
		"Prepared for {{client_name}} ({{client_email}})",
		"{{#block user_pricing}}",
		"{{unit_count}} users",
		"{{/block user_pricing}}",
	)

	wantPlaceholders := []string{"client_email", "client_name", "unit_count"}
	if got := tpl.Placeholders(); !reflect.DeepEqual(got, wantPlaceholders) {
		t.Errorf("Placeholders() = %v, want %v", got, wantPlaceholders)
	}

	wantBlocks := []string{"user_pricing"}
	if got := tpl.Blocks(); !reflect.DeepEqual(got, wantBlocks) {
		t.Errorf("Blocks() = %v, want %v", got, wantBlocks)
	}
}

func TestTemplateRenderSubstitutesEverything(t *testing.T) {
	tpl := testTemplate(t,
		"Prepared for {{client_name}}",
		"{{#block compliance_services}}",
		"Compliance included",
		"{{/block compliance_services}}",
	)

	out, err := tpl.Render(
		Values{"client_name": "Acme Corp"},
		Blocks{"compliance_services": true},
	)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	text, err := ExtractText(out)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(text, "Prepared for Acme Corp") {
		t.Errorf("output missing substituted text:\n%s", text)
	}
	if !strings.Contains(text, "Compliance included") {
		t.Errorf("output missing included block:\n%s", text)
	}
	if strings.Contains(text, "{{") {
		t.Errorf("output contains unresolved tokens:\n%s", text)
	}
}

func TestTemplateRenderMissingPlaceholderFailsWhole(t *testing.T) {
	tpl := testTemplate(t, "Prepared for {{client_name}}", "Contact {{client_email}}")

	out, err := tpl.Render(Values{"client_name": "Acme Corp"}, Blocks{})
	if err == nil {
		t.Fatal("Render() expected error for missing placeholder")
	}
	if !IsRenderError(err) {
		t.Errorf("Render() error = %T, want *RenderError", err)
	}
	if out != nil {
		t.Error("Render() returned partial output alongside an error")
	}
}

func TestTemplateRenderIsDeterministic(t *testing.T) {
	tpl := testTemplate(t,
		"Prepared for {{client_name}}",
		"{{#block user_pricing}}",
		"{{unit_count}} users",
		"{{/block user_pricing}}",
	)

	values := Values{"client_name": "Acme Corp", "unit_count": "3"}
	blocks := Blocks{"user_pricing": true}

	first, err := tpl.Render(values, blocks)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := tpl.Render(values, blocks)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("rendering identical input twice produced different bytes")
	}
}

func TestTemplateRenderPreservesOtherParts(t *testing.T) {
	tpl := testTemplate(t, "Prepared for {{client_name}}")

	out, err := tpl.Render(Values{"client_name": "Acme Corp"}, Blocks{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	reader, err := newDocxReader(out)
	if err != nil {
		t.Fatalf("output is not a valid DOCX: %v", err)
	}
	for _, part := range []string{"_rels/.rels", "[Content_Types].xml", "word/document.xml"} {
		if _, err := reader.getPart(part); err != nil {
			t.Errorf("output missing part %s: %v", part, err)
		}
	}
}

func TestDefaultTemplate(t *testing.T) {
	tpl, err := Parse(DefaultTemplate())
	if err != nil {
		t.Fatalf("Parse(DefaultTemplate()) error = %v", err)
	}

	wantBlocks := []string{
		"compliance_services",
		"security_plus_services",
		"user_pricing",
		"workstation_pricing",
	}
	if got := tpl.Blocks(); !reflect.DeepEqual(got, wantBlocks) {
		t.Errorf("DefaultTemplate blocks = %v, want %v", got, wantBlocks)
	}

	wantPlaceholders := []string{
		"client_address", "client_email", "client_name", "client_phone",
		"current_date", "current_month_year",
		"monthly_total", "preparer_email", "preparer_name",
		"pricing_summary", "unit_count", "unit_price",
	}
	if got := tpl.Placeholders(); !reflect.DeepEqual(got, wantPlaceholders) {
		t.Errorf("DefaultTemplate placeholders = %v, want %v", got, wantPlaceholders)
	}
}
