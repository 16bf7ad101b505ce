// Package render turns a {client, invoice, profile} triple into a paginated
// PDF artifact. Layout construction is a pure function so the document
// structure can be asserted without parsing PDF bytes; painting is a thin
// pass over the finished layout.
package render

import (
	"fmt"
	"strings"
	"time"

	"khaata/internal/ledger"
	"khaata/pkg/models"
)

// Row is one line of the three-column item grid.
type Row struct {
	Description string
	Quantity    string // numeric for services, "-" for reimbursements
	Amount      string // line total, 2 fraction digits
}

// Section is a labeled run of rows. A section with no rows is never
// emitted.
type Section struct {
	Title string
	Rows  []Row
}

// Layout is the complete document structure, ready to paint. Identical
// inputs always produce an identical Layout.
type Layout struct {
	SenderName  string
	SenderLines []string // address lines, then the PAN line
	BillTo      []string // client name, address, country, tax-identifier line
	Meta        []string // invoice number, date, currency — right column
	Sections    []Section
	TotalLabel  string
	TotalValue  string
	BankLines   []string
	Date        time.Time // invoice date; pins the PDF creation date
	Filename    string
}

// BuildLayout validates the inputs and produces the document structure.
// Any structurally missing field aborts with a RenderError wrapping
// ErrMissingField.
func BuildLayout(client models.Client, inv models.Invoice, profile models.Profile) (*Layout, error) {
	const op = "BuildLayout"

	switch {
	case client.Name == "":
		return nil, missingField(op, "client.name")
	case client.Address == "":
		return nil, missingField(op, "client.address")
	case client.Country == "":
		return nil, missingField(op, "client.country")
	case client.Currency == "":
		return nil, missingField(op, "client.currency")
	case inv.ID == "":
		return nil, missingField(op, "invoice.id")
	case inv.Date == "":
		return nil, missingField(op, "invoice.date")
	case profile.Name == "":
		return nil, missingField(op, "profile.name")
	}

	date, err := time.Parse("2006-01-02", inv.Date)
	if err != nil {
		return nil, &RenderError{Op: op, Field: "invoice.date", Err: err}
	}

	l := &Layout{
		SenderName: profile.Name,
		Date:       date,
		Filename:   ArtifactName(client, inv),
	}

	l.SenderLines = append(l.SenderLines, strings.Split(profile.Address, "\n")...)
	l.SenderLines = append(l.SenderLines, "PAN: "+orNA(profile.PAN))

	l.BillTo = []string{client.Name, client.Address, client.Country}
	if client.Jurisdiction == models.Foreign {
		l.BillTo = append(l.BillTo, "VAT ID: "+orNA(client.VATID))
	} else {
		l.BillTo = append(l.BillTo, "GSTIN: "+orNA(client.GSTID))
	}

	l.Meta = []string{
		"Invoice #: " + inv.ID,
		"Date: " + inv.Date,
		"Currency: " + client.Currency,
	}

	if len(inv.Services) > 0 {
		sec := Section{Title: "Professional Services"}
		for _, item := range inv.Services {
			sec.Rows = append(sec.Rows, Row{
				Description: fmt.Sprintf("%s (%s hrs @ %s)", item.Description, item.Quantity.String(), item.Rate.String()),
				Quantity:    item.Quantity.String(),
				Amount:      item.Total().StringFixed(2),
			})
		}
		l.Sections = append(l.Sections, sec)
	}
	if len(inv.Reimbursements) > 0 {
		sec := Section{Title: "Reimbursements"}
		for _, item := range inv.Reimbursements {
			sec.Rows = append(sec.Rows, Row{
				Description: item.Description,
				Quantity:    "-",
				Amount:      item.Total().StringFixed(2),
			})
		}
		l.Sections = append(l.Sections, sec)
	}

	l.TotalLabel = "TOTAL AMOUNT DUE:"
	l.TotalValue = client.Currency + " " + ledger.ComputeTotal(inv.Items()).StringFixed(2)

	// Routing identifier follows the same jurisdiction tag as the
	// tax-identifier line above.
	routing := "IFSC: " + profile.IFSC
	if client.Jurisdiction == models.Foreign {
		routing = "SWIFT/BIC: " + profile.SwiftBIC
	}
	l.BankLines = []string{
		"Beneficiary: " + profile.AccountName,
		"Bank: " + profile.BankName,
		"Account No: " + profile.AccountNumber,
		routing,
		"Branch Address: " + profile.BranchAddress,
	}

	return l, nil
}

// ArtifactName derives the deterministic file name for an invoice PDF.
// Whitespace in the client name collapses to single underscores.
func ArtifactName(client models.Client, inv models.Invoice) string {
	name := strings.Join(strings.Fields(client.Name), "_")
	return name + "_" + inv.ID + ".pdf"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
