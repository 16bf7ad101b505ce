package models

import "fmt"

// Jurisdiction classifies a client as billed domestically or abroad. It
// drives both the tax-identifier field on the client and the bank routing
// identifier shown on rendered invoices.
type Jurisdiction string

const (
	Domestic Jurisdiction = "Domestic"
	Foreign  Jurisdiction = "Foreign"
)

// DomesticCurrency is the only currency a Domestic client may bill in.
const DomesticCurrency = "INR"

// ForeignCurrencies enumerates the currencies selectable for Foreign clients.
var ForeignCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD"}

// Client is a billable party. Exactly one of GSTID/VATID is populated,
// matching Jurisdiction.
type Client struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	Country      string       `json:"country"`
	Jurisdiction Jurisdiction `json:"type"`
	Currency     string       `json:"currency"`
	GSTID        string       `json:"gst_id,omitempty"` // Domestic only
	VATID        string       `json:"vat_id,omitempty"` // Foreign only
}

// Validate enforces the jurisdiction invariant. It must hold after add and
// after every update path.
func (c *Client) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("client name is required")
	}
	switch c.Jurisdiction {
	case Domestic:
		if c.VATID != "" {
			return fmt.Errorf("domestic client %q must not carry a VAT id", c.Name)
		}
		if c.GSTID == "" {
			return fmt.Errorf("domestic client %q requires a GSTIN", c.Name)
		}
		if c.Currency != DomesticCurrency {
			return fmt.Errorf("domestic client %q must bill in %s, got %q", c.Name, DomesticCurrency, c.Currency)
		}
	case Foreign:
		if c.GSTID != "" {
			return fmt.Errorf("foreign client %q must not carry a GSTIN", c.Name)
		}
		if c.VATID == "" {
			return fmt.Errorf("foreign client %q requires a VAT id", c.Name)
		}
		if !validForeignCurrency(c.Currency) {
			return fmt.Errorf("unsupported currency %q for foreign client %q", c.Currency, c.Name)
		}
	default:
		return fmt.Errorf("unknown jurisdiction %q for client %q", c.Jurisdiction, c.Name)
	}
	return nil
}

func validForeignCurrency(code string) bool {
	for _, c := range ForeignCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
