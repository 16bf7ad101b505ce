package models

import "github.com/shopspring/decimal"

// ItemCategory distinguishes billable work from pass-through expenses.
type ItemCategory string

const (
	Service       ItemCategory = "Service"
	Reimbursement ItemCategory = "Reimbursement"
)

// LineItem is a single billable or reimbursable entry. Immutable once
// attached to an invoice.
type LineItem struct {
	Description string          `json:"desc"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"qty"` // always 1 for reimbursements
	Category    ItemCategory    `json:"category"`
}

// Total returns rate x quantity, exact. Rounding happens only at
// presentation time.
func (li LineItem) Total() decimal.Decimal {
	return li.Rate.Mul(li.Quantity)
}

// Invoice is an immutable billing record. ClientName is a snapshot taken at
// creation time and is not kept in sync with later client renames.
type Invoice struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	ClientName     string          `json:"client_name"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Services       []LineItem      `json:"services"`
	Reimbursements []LineItem      `json:"reimbursements"`
	Total          decimal.Decimal `json:"total"`
}

// Items returns both item sequences combined, services first, preserving
// insertion order within each.
func (inv *Invoice) Items() []LineItem {
	items := make([]LineItem, 0, len(inv.Services)+len(inv.Reimbursements))
	items = append(items, inv.Services...)
	items = append(items, inv.Reimbursements...)
	return items
}
