package agreement

import (
	"github.com/shopspring/decimal"
)

// PricingModel identifies the mutually exclusive pricing calculation modes
type PricingModel string

const (
	ModelWorkstation PricingModel = "workstation"
	ModelUser        PricingModel = "user"
)

// PricingPlan is the single active pricing variant of a submission. Only
// the selected model's count and unit price ever reach this type; the
// non-selected variant's form fields are never read.
type PricingPlan struct {
	Model     PricingModel
	Count     int
	UnitPrice decimal.Decimal
}

// OptionalService is an additive feature toggle affecting which descriptive
// sections appear in the rendered agreement
type OptionalService string

const (
	ServiceCompliance   OptionalService = "compliance"
	ServiceSecurityPlus OptionalService = "security_plus"
)

// ServiceSet holds the optional services selected for a submission
type ServiceSet map[OptionalService]bool

// Has reports whether the service is selected
func (s ServiceSet) Has(svc OptionalService) bool {
	return s[svc]
}

// Submission is a fully validated agreement request. Invalid raw input
// never reaches this type; construct one through ParseForm.
type Submission struct {
	ClientName    string
	ClientEmail   string
	ClientAddress string
	ClientPhone   string

	PreparerName  string
	PreparerEmail string

	Plan     PricingPlan
	Services ServiceSet
}
