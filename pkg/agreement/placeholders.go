package agreement

import (
	"strconv"
	"time"

	"github.com/avatarmsp/msagen/pkg/docxtpl"
)

// Placeholders derives the complete placeholder map for a submission.
// The reference time is passed in by the caller so rendering stays a pure
// function of its inputs.
func Placeholders(sub *Submission, now time.Time) docxtpl.Values {
	quote := Resolve(sub.Plan)

	return docxtpl.Values{
		"client_name":        sub.ClientName,
		"client_email":       sub.ClientEmail,
		"client_address":     sub.ClientAddress,
		"client_phone":       sub.ClientPhone,
		"preparer_name":      sub.PreparerName,
		"preparer_email":     sub.PreparerEmail,
		"current_date":       now.Format("January 2, 2006"),
		"current_month_year": now.Format("January 2006"),
		"unit_count":         strconv.Itoa(quote.Count),
		"unit_price":         FormatUSD(quote.UnitPrice),
		"monthly_total":      FormatUSD(quote.Total),
		"pricing_summary":    quote.Summary,
	}
}

// BlockSet selects the conditional template blocks a submission retains:
// exactly one pricing block, plus one block per selected optional service.
func BlockSet(sub *Submission) docxtpl.Blocks {
	return docxtpl.Blocks{
		"workstation_pricing":    sub.Plan.Model == ModelWorkstation,
		"user_pricing":           sub.Plan.Model == ModelUser,
		"compliance_services":    sub.Services.Has(ServiceCompliance),
		"security_plus_services": sub.Services.Has(ServiceSecurityPlus),
	}
}
