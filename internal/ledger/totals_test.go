package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"khaata/pkg/models"
)

func item(desc string, rate, qty float64, cat models.ItemCategory) models.LineItem {
	return models.LineItem{
		Description: desc,
		Rate:        decimal.NewFromFloat(rate),
		Quantity:    decimal.NewFromFloat(qty),
		Category:    cat,
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []models.LineItem
		want  string
	}{
		{
			name: "services and reimbursements combined",
			items: []models.LineItem{
				item("Design", 100, 5, models.Service),
				item("Travel", 250, 1, models.Reimbursement),
			},
			want: "750.00",
		},
		{
			name:  "empty sequence sums to zero",
			items: nil,
			want:  "0.00",
		},
		{
			name: "fractional rates stay exact to the cent",
			items: []models.LineItem{
				item("A", 0.1, 3, models.Service),
				item("B", 0.2, 3, models.Service),
			},
			want: "0.90",
		},
		{
			name: "zero quantity contributes nothing",
			items: []models.LineItem{
				item("A", 99.99, 0, models.Service),
				item("B", 10, 1, models.Service),
			},
			want: "10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotal(tt.items).StringFixed(2))
		})
	}
}

func TestComputeTotalOrderIndependent(t *testing.T) {
	items := []models.LineItem{
		item("A", 33.33, 3, models.Service),
		item("B", 0.07, 11, models.Service),
		item("C", 1200, 0.5, models.Service),
		item("D", 19.99, 1, models.Reimbursement),
	}
	forward := ComputeTotal(items)

	reversed := make([]models.LineItem, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	assert.True(t, forward.Equal(ComputeTotal(reversed)),
		"sum must not depend on traversal order: %s vs %s", forward, ComputeTotal(reversed))
}

func TestPartitionPreservesOrder(t *testing.T) {
	items := []models.LineItem{
		item("s1", 1, 1, models.Service),
		item("r1", 2, 1, models.Reimbursement),
		item("s2", 3, 1, models.Service),
		item("r2", 4, 1, models.Reimbursement),
	}

	services, reimbursements := Partition(items)

	assert.Equal(t, []string{"s1", "s2"}, descriptions(services))
	assert.Equal(t, []string{"r1", "r2"}, descriptions(reimbursements))
}

func descriptions(items []models.LineItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}
