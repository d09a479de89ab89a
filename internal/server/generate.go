package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/avatarmsp/msagen/pkg/agreement"
)

// fieldError mirrors agreement.FieldError in the JSON error payload
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Generate validates the submitted form and streams back the assembled
// agreement document. Validation problems come back as structured JSON;
// rendering problems are an opaque generation failure with full detail in
// the logs.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	form := make(agreement.FormData, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}

	sub, err := agreement.ParseForm(form, s.preparer)
	if err != nil {
		var verr *agreement.ValidationError
		if errors.As(err, &verr) {
			payload := map[string]any{}
			if verr.PricingSelection != nil {
				payload["error"] = verr.PricingSelection.Error()
			}
			fields := make([]fieldError, 0, len(verr.Fields))
			for _, fe := range verr.Fields {
				fields = append(fields, fieldError{Field: fe.Field, Message: fe.Message})
			}
			payload["errors"] = fields
			writeJSON(w, http.StatusUnprocessableEntity, payload)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := s.generator.Generate(sub)
	if err != nil {
		// Template/engine mismatch, not bad user input: log the detail,
		// keep the response opaque.
		log.Error().Err(err).Str("client", sub.ClientName).Msg("document generation failed")
		writeError(w, http.StatusInternalServerError, "document generation failed")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)

	log.Info().
		Str("client", sub.ClientName).
		Str("filename", doc.Filename).
		Int("bytes", len(doc.Content)).
		Msg("agreement generated")
}
