package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientValidate(t *testing.T) {
	domestic := Client{
		Name:         "Sharma & Co",
		Address:      "12 MG Road",
		Country:      "India",
		Jurisdiction: Domestic,
		Currency:     "INR",
		GSTID:        "27AAAAA0000A1Z5",
	}
	foreign := Client{
		Name:         "Acme",
		Address:      "1 Main St",
		Country:      "USA",
		Jurisdiction: Foreign,
		Currency:     "USD",
		VATID:        "VAT123",
	}

	tests := []struct {
		name    string
		mutate  func(c *Client)
		client  Client
		wantErr bool
	}{
		{name: "valid domestic", client: domestic},
		{name: "valid foreign", client: foreign},
		{name: "domestic with VAT id", client: domestic, mutate: func(c *Client) { c.VATID = "VAT1" }, wantErr: true},
		{name: "domestic without GSTIN", client: domestic, mutate: func(c *Client) { c.GSTID = "" }, wantErr: true},
		{name: "domestic in USD", client: domestic, mutate: func(c *Client) { c.Currency = "USD" }, wantErr: true},
		{name: "foreign with GSTIN", client: foreign, mutate: func(c *Client) { c.GSTID = "27A" }, wantErr: true},
		{name: "foreign without VAT id", client: foreign, mutate: func(c *Client) { c.VATID = "" }, wantErr: true},
		{name: "foreign in unlisted currency", client: foreign, mutate: func(c *Client) { c.Currency = "BTC" }, wantErr: true},
		{name: "missing name", client: foreign, mutate: func(c *Client) { c.Name = "" }, wantErr: true},
		{name: "unknown jurisdiction", client: foreign, mutate: func(c *Client) { c.Jurisdiction = "Martian" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.client
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
