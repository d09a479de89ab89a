// Package agreement implements the document assembly engine for master
// service agreements: it validates raw form submissions, resolves the
// selected pricing model into monetary totals, and renders a finished
// agreement document from the base template.
//
// Processing is stateless and request-scoped. A Submission either passes
// validation completely or is never constructed; everything derived from it
// (placeholder values, totals, the rendered document) is computed fresh per
// request and discarded once delivered.
package agreement
