package agreement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormData is the raw field mapping handed over by the transport layer.
// All values are untyped strings; optional-service flags are represented
// by key presence.
type FormData map[string]string

// Preparer is the identity filled into the "Prepared By" section when the
// form leaves the preparer fields empty
type Preparer struct {
	Name  string
	Email string
}

// Recognized form field names
const (
	FieldClientName    = "client_name"
	FieldClientEmail   = "client_email"
	FieldClientAddress = "client_address"
	FieldClientPhone   = "client_phone"
	FieldPreparerName  = "preparer_name"
	FieldPreparerEmail = "preparer_email"
	FieldPricingModel  = "pricing_model"
)

// emailRegex accepts the standard local@domain.tld shape. Full RFC
// correctness is a non-goal; this rejects obvious garbage.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ParseForm validates raw form fields and produces a typed Submission, or
// a *ValidationError naming every failing field. Fields belonging to the
// non-selected pricing variant are neither validated nor read.
func ParseForm(form FormData, preparer Preparer) (*Submission, error) {
	verr := &ValidationError{}

	sub := &Submission{
		ClientName:    strings.TrimSpace(form[FieldClientName]),
		ClientEmail:   strings.TrimSpace(form[FieldClientEmail]),
		ClientAddress: strings.TrimSpace(form[FieldClientAddress]),
		ClientPhone:   strings.TrimSpace(form[FieldClientPhone]),
		PreparerName:  strings.TrimSpace(form[FieldPreparerName]),
		PreparerEmail: strings.TrimSpace(form[FieldPreparerEmail]),
		Services:      make(ServiceSet),
	}

	if sub.ClientName == "" {
		verr.add(FieldClientName, "client name is required")
	}
	if sub.ClientEmail == "" {
		verr.add(FieldClientEmail, "client email is required")
	} else if !emailRegex.MatchString(sub.ClientEmail) {
		verr.add(FieldClientEmail, "client email is not a valid address")
	}
	if sub.ClientAddress == "" {
		verr.add(FieldClientAddress, "client address is required")
	}
	// Phone is optional and not format-checked; the form aids entry but is
	// not authoritative.

	if sub.PreparerName == "" {
		sub.PreparerName = preparer.Name
	}
	if sub.PreparerEmail == "" {
		sub.PreparerEmail = preparer.Email
	}

	switch model := PricingModel(strings.TrimSpace(form[FieldPricingModel])); model {
	case ModelWorkstation:
		sub.Plan = parsePlan(form, ModelWorkstation, "workstation_count", "workstation_price", verr)
	case ModelUser:
		sub.Plan = parsePlan(form, ModelUser, "user_count", "user_price", verr)
	default:
		verr.PricingSelection = ErrNoPricingModel
	}

	for _, svc := range []OptionalService{ServiceCompliance, ServiceSecurityPlus} {
		if _, ok := form[string(svc)]; ok {
			sub.Services[svc] = true
		}
	}

	if err := verr.err(); err != nil {
		return nil, err
	}
	return sub, nil
}

// parsePlan validates the count and unit price fields of the selected
// pricing variant only
func parsePlan(form FormData, model PricingModel, countField, priceField string, verr *ValidationError) PricingPlan {
	plan := PricingPlan{Model: model}

	count, err := strconv.Atoi(strings.TrimSpace(form[countField]))
	switch {
	case err != nil:
		verr.add(countField, "count must be a whole number")
	case count < 1:
		verr.add(countField, "count must be at least 1")
	default:
		plan.Count = count
	}

	price, err := decimal.NewFromString(strings.TrimSpace(form[priceField]))
	switch {
	case err != nil:
		verr.add(priceField, "unit price must be a number")
	case !price.IsPositive():
		verr.add(priceField, "unit price must be greater than zero")
	default:
		plan.UnitPrice = price
	}

	return plan
}
