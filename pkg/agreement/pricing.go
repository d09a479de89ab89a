package agreement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is the resolved pricing for a submission: the monthly total and
// the human-readable line item the template renders.
type Quote struct {
	Count     int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Summary   string
}

// Resolve computes the monetary totals for the active pricing variant.
// Arithmetic is decimal throughout; the total rounds half-up to cents.
// Optional services contribute description blocks only, never a price.
func Resolve(plan PricingPlan) Quote {
	unitPrice := plan.UnitPrice.Round(2)
	total := decimal.NewFromInt(int64(plan.Count)).Mul(plan.UnitPrice).Round(2)

	noun := "workstation"
	if plan.Model == ModelUser {
		noun = "user"
	}
	if plan.Count != 1 {
		noun += "s"
	}

	return Quote{
		Count:     plan.Count,
		UnitPrice: unitPrice,
		Total:     total,
		Summary:   fmt.Sprintf("%d %s × %s", plan.Count, noun, FormatUSD(unitPrice)),
	}
}

// FormatUSD renders a decimal amount as a dollar string with thousands
// grouping, e.g. $1,234.56
func FormatUSD(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, cents, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + "$" + grouped.String() + "." + cents
}
