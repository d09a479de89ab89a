package agreement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		model       PricingModel
		count       int
		unitPrice   string
		wantTotal   string
		wantSummary string
	}{
		{
			name:        "workstation base case",
			model:       ModelWorkstation,
			count:       12,
			unitPrice:   "45.00",
			wantTotal:   "$540.00",
			wantSummary: "12 workstations × $45.00",
		},
		{
			name:        "rounds half up at two decimals",
			model:       ModelWorkstation,
			count:       1,
			unitPrice:   "99.999",
			wantTotal:   "$100.00",
			wantSummary: "1 workstation × $100.00",
		},
		{
			name:        "user wording",
			model:       ModelUser,
			count:       3,
			unitPrice:   "15.00",
			wantTotal:   "$45.00",
			wantSummary: "3 users × $15.00",
		},
		{
			name:        "single user",
			model:       ModelUser,
			count:       1,
			unitPrice:   "15.00",
			wantTotal:   "$15.00",
			wantSummary: "1 user × $15.00",
		},
		{
			name:        "no float artifacts",
			model:       ModelUser,
			count:       3,
			unitPrice:   "0.10",
			wantTotal:   "$0.30",
			wantSummary: "3 users × $0.10",
		},
		{
			name:        "thousands grouping",
			model:       ModelWorkstation,
			count:       250,
			unitPrice:   "110.00",
			wantTotal:   "$27,500.00",
			wantSummary: "250 workstations × $110.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Resolve(PricingPlan{
				Model:     tt.model,
				Count:     tt.count,
				UnitPrice: decimal.RequireFromString(tt.unitPrice),
			})

			if got := FormatUSD(quote.Total); got != tt.wantTotal {
				t.Errorf("total = %s, want %s", got, tt.wantTotal)
			}
			if quote.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", quote.Summary, tt.wantSummary)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	plan := PricingPlan{Model: ModelUser, Count: 7, UnitPrice: decimal.RequireFromString("19.99")}
	first := Resolve(plan)
	second := Resolve(plan)

	if !first.Total.Equal(second.Total) || first.Summary != second.Summary {
		t.Errorf("Resolve() is not deterministic: %+v vs %+v", first, second)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"45", "$45.00"},
		{"540", "$540.00"},
		{"1234.56", "$1,234.56"},
		{"1234567.89", "$1,234,567.89"},
		{"999.995", "$1,000.00"},
		{"-5", "-$5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatUSD(decimal.RequireFromString(tt.input)); got != tt.want {
				t.Errorf("FormatUSD(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
