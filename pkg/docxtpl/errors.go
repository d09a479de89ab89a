package docxtpl

import "fmt"

// TemplateError represents a structural problem in the template itself:
// an unbalanced block marker, a marker mixed with other content, or a
// package that is not a valid DOCX. Every render of a broken template
// fails the same way, so this surfaces at load time where possible.
type TemplateError struct {
	Message string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error: %s", e.Message)
}

// NewTemplateError creates a new template error
func NewTemplateError(format string, args ...interface{}) error {
	return &TemplateError{Message: fmt.Sprintf(format, args...)}
}

// RenderError represents a failed render: a placeholder token found in the
// template with no corresponding value. The request that triggered it gets
// no document at all.
type RenderError struct {
	Placeholder string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error: no value for placeholder %q", e.Placeholder)
}

// NewRenderError creates a new render error for an unresolved placeholder
func NewRenderError(placeholder string) error {
	return &RenderError{Placeholder: placeholder}
}

// DocumentError represents an error reading or writing the DOCX package
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document error during %s of %q: %v", e.Operation, e.Path, e.Cause)
	}
	return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{Operation: operation, Path: path, Cause: cause}
}

// IsTemplateError checks if an error is a template error
func IsTemplateError(err error) bool {
	_, ok := err.(*TemplateError)
	return ok
}

// IsRenderError checks if an error is a render error
func IsRenderError(err error) bool {
	_, ok := err.(*RenderError)
	return ok
}
