package agreement

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/avatarmsp/msagen/pkg/docxtpl"
)

// templateWithUnknownPlaceholder builds a minimal DOCX template referencing
// a placeholder the engine never produces
func templateWithUnknownPlaceholder() []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Signed by {{account_manager}}</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	w.Close()
	return buf.Bytes()
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()

	tpl, err := docxtpl.Parse(docxtpl.DefaultTemplate())
	if err != nil {
		t.Fatalf("Parse(DefaultTemplate()) error = %v", err)
	}
	return NewGenerator(tpl, WithClock(func() time.Time { return testTime }))
}

func TestGenerate(t *testing.T) {
	gen := testGenerator(t)

	doc, err := gen.Generate(testSubmission(ModelWorkstation, ServiceCompliance))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if doc.Filename != "MSA_Acme_Corp_20260826.docx" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if doc.ContentType != docxtpl.ContentType {
		t.Errorf("ContentType = %q", doc.ContentType)
	}

	text, err := docxtpl.ExtractText(doc.Content)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	for _, want := range []string{
		"Acme Corp",
		"it@acme.example",
		"12 workstations × $45.00",
		"$540.00",
		"Compliance Services",
		"August 2026",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("document missing %q", want)
		}
	}
	for _, missing := range []string{
		"per supported user",
		"Security Plus Services",
		"{{",
	} {
		if strings.Contains(text, missing) {
			t.Errorf("document should not contain %q", missing)
		}
	}
}

func TestGenerateUserModel(t *testing.T) {
	gen := testGenerator(t)

	doc, err := gen.Generate(testSubmission(ModelUser))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	text, err := docxtpl.ExtractText(doc.Content)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	if !strings.Contains(text, "per supported user") {
		t.Error("document missing user pricing block")
	}
	if strings.Contains(text, "per managed workstation") {
		t.Error("document contains workstation pricing block for a user submission")
	}
	if strings.Contains(text, "Compliance Services") || strings.Contains(text, "Security Plus Services") {
		t.Error("document contains service blocks without selected services")
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	gen := testGenerator(t)
	sub := testSubmission(ModelUser, ServiceSecurityPlus)

	first, err := gen.Generate(sub)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := gen.Generate(sub)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !bytes.Equal(first.Content, second.Content) {
		t.Error("generating the same submission twice produced different bytes")
	}
	if first.Filename != second.Filename {
		t.Errorf("filenames differ: %q vs %q", first.Filename, second.Filename)
	}
}

func TestGenerateFailsOnIncompleteTemplate(t *testing.T) {
	// A template referencing a placeholder the engine never produces must
	// fail every render, never yield a partial document.
	tpl, err := docxtpl.Parse(templateWithUnknownPlaceholder())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	gen := NewGenerator(tpl, WithClock(func() time.Time { return testTime }))

	doc, err := gen.Generate(testSubmission(ModelWorkstation))
	if err == nil {
		t.Fatal("Generate() expected error for unresolved placeholder")
	}
	if !docxtpl.IsRenderError(err) {
		t.Errorf("Generate() error = %T, want *docxtpl.RenderError", err)
	}
	if doc != nil {
		t.Error("Generate() returned a partial document alongside an error")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name   string
		client string
		want   string
	}{
		{"spaces become underscores", "Acme Corp", "MSA_Acme_Corp_20260826.docx"},
		{"unsafe characters dropped", `Acme/Corp: "West"`, "MSA_AcmeCorp_West_20260826.docx"},
		{"already clean", "Initech", "MSA_Initech_20260826.docx"},
		{"nothing usable", "///", "MSA_Client_20260826.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.client, testTime); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.client, got, tt.want)
			}
		})
	}
}
