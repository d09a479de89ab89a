package agreement

import (
	"regexp"
	"strings"
	"time"

	"github.com/avatarmsp/msagen/pkg/docxtpl"
)

// Document is a rendered agreement ready for download. It exists only in
// memory for the duration of the response and is never persisted.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Generator assembles agreement documents from validated submissions.
// It shares one immutable template across requests and is safe for
// concurrent use.
type Generator struct {
	tpl *docxtpl.Template
	now func() time.Time
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithClock overrides the time source, fixing the dates and the filename
// stamp rendered into documents. Used by tests.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator bound to a parsed template
func NewGenerator(tpl *docxtpl.Template, opts ...GeneratorOption) *Generator {
	g := &Generator{
		tpl: tpl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the agreement for a validated submission. Any error is
// a generation failure: no partial document is ever returned.
func (g *Generator) Generate(sub *Submission) (*Document, error) {
	now := g.now()

	content, err := g.tpl.Render(Placeholders(sub, now), BlockSet(sub))
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    Filename(sub.ClientName, now),
		ContentType: docxtpl.ContentType,
		Content:     content,
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename derives the deterministic download name for an agreement,
// e.g. MSA_Acme_Corp_20260826.docx
func Filename(clientName string, now time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(clientName), " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "Client"
	}
	return "MSA_" + name + "_" + now.Format("20060102") + ".docx"
}
