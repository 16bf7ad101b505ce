package ledger

import (
	"github.com/shopspring/decimal"

	"khaata/pkg/models"
)

// oneQuantity pins reimbursement quantities: always 1, displayed as a dash.
var oneQuantity = decimal.NewFromInt(1)

// ComputeTotal returns the exact sum of rate x quantity over all items.
// Nothing is rounded mid-sum; round to 2 fraction digits only when
// formatting for display.
func ComputeTotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}

// Partition splits a combined item sequence into its service and
// reimbursement subsequences, preserving insertion order within each.
func Partition(items []models.LineItem) (services, reimbursements []models.LineItem) {
	for _, item := range items {
		if item.Category == models.Reimbursement {
			reimbursements = append(reimbursements, item)
		} else {
			services = append(services, item)
		}
	}
	return services, reimbursements
}

func validateItems(items []models.LineItem) error {
	for _, item := range items {
		if item.Description == "" {
			return NewValidationError("description", "line item description is required")
		}
		if item.Rate.IsNegative() || item.Quantity.IsNegative() {
			return NewValidationError("rate", ErrNegativeAmount.Error())
		}
	}
	return nil
}
