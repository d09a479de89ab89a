// Package docxtpl renders DOCX documents from a fixed template by
// substituting {{name}} placeholder tokens and including or excluding
// conditional content blocks bracketed by {{#block name}} / {{/block}}
// marker paragraphs.
//
// A Template is parsed once and is safe for concurrent use; every Render
// call produces a complete new document. Rendering is strict: a placeholder
// token without a value, or an unbalanced block marker, fails the whole
// render instead of leaving literal token text in the output.
//
// Content the engine does not model, such as hyperlinks, bookmarks, tabs,
// and drawings, passes through rendering verbatim. A placeholder mixed
// into the same paragraph as such content, or hidden inside it, is
// rejected at parse time rather than silently rewritten.
//
// Basic usage:
//
//	tpl, err := docxtpl.Open("agreement.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := tpl.Render(docxtpl.Values{
//	    "client_name": "Acme Corp",
//	}, docxtpl.Blocks{"workstation_pricing": true})
package docxtpl
