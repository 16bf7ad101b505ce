// Package ledger holds the domain model and the operations the command
// layer dispatches to: client CRUD, invoice creation and lookup, line-item
// aggregation and the organization profile.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"khaata/internal/logger"
	"khaata/internal/store"
	"khaata/pkg/models"
)

// Persister is the record-store contract the ledger needs. Collections are
// always loaded and saved whole.
type Persister interface {
	LoadClients() ([]models.Client, error)
	SaveClients([]models.Client) error
	LoadInvoices() ([]models.Invoice, error)
	SaveInvoices([]models.Invoice) error
	LoadProfile() (models.Profile, error)
	SaveProfile(models.Profile) error
}

// Service owns the in-memory working copy of all ledger state. It is
// single-threaded by design: one command is fully processed, including the
// save back to disk, before the next is accepted.
type Service struct {
	store    Persister
	clients  []models.Client
	invoices []models.Invoice
	profile  models.Profile
	log      zerolog.Logger
	now      func() time.Time
}

// NewService loads all collections into memory. Corrupt collection files
// are reported with a warning and replaced by their defaults; the service
// still starts.
func NewService(p Persister) *Service {
	s := &Service{
		store: p,
		log:   logger.WithComponent("ledger"),
		now:   time.Now,
	}

	var err error
	if s.clients, err = p.LoadClients(); err != nil {
		s.warnLoad("clients", err)
	}
	if s.invoices, err = p.LoadInvoices(); err != nil {
		s.warnLoad("invoices", err)
	}
	if s.profile, err = p.LoadProfile(); err != nil {
		s.warnLoad("profile", err)
	}
	return s
}

func (s *Service) warnLoad(collection string, err error) {
	if errors.Is(err, store.ErrCorruptCollection) {
		s.log.Warn().
			Str("collection", collection).
			Err(err).
			Msg("Collection could not be parsed; starting from defaults. The file on disk is untouched.")
		return
	}
	s.log.Warn().
		Str("collection", collection).
		Err(err).
		Msg("Collection could not be read; starting from defaults")
}

// --- clients ---

// Clients returns the current client collection.
func (s *Service) Clients() []models.Client {
	return s.clients
}

// AddClient validates the client, assigns an id and persists the
// collection.
func (s *Service) AddClient(c models.Client) (models.Client, error) {
	if c.Jurisdiction == models.Domestic && c.Currency == "" {
		c.Currency = models.DomesticCurrency
	}
	if c.Jurisdiction == models.Domestic && c.Country == "" {
		c.Country = "India"
	}
	if err := c.Validate(); err != nil {
		return models.Client{}, NewValidationError("client", err.Error())
	}

	c.ID = newClientID(s.now())
	s.clients = append(s.clients, c)
	if err := s.store.SaveClients(s.clients); err != nil {
		return models.Client{}, err
	}

	s.log.Info().Str("client_id", c.ID).Str("name", c.Name).Msg("Client added")
	return c, nil
}

// GetClient returns the client with the given id.
func (s *Service) GetClient(id string) (models.Client, error) {
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

// FindClient resolves a hint to a client: exact id match first, then
// case-insensitive substring match on the name.
func (s *Service) FindClient(hint string) (models.Client, error) {
	if c, err := s.GetClient(hint); err == nil {
		return c, nil
	}
	needle := strings.ToLower(hint)
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

// ClientUpdate carries the fields an update may change. Nil means keep the
// current value. Which tax-identifier field applies follows the client's
// current jurisdiction.
type ClientUpdate struct {
	Name    *string
	Address *string
	Country *string
	GSTID   *string
	VATID   *string
}

// UpdateClient applies the update, re-checks the jurisdiction invariant and
// persists the collection.
func (s *Service) UpdateClient(id string, upd ClientUpdate) (models.Client, error) {
	idx := -1
	for i, c := range s.clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Client{}, ErrClientNotFound
	}

	c := s.clients[idx]
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	if upd.Country != nil {
		c.Country = *upd.Country
	}
	if upd.GSTID != nil {
		if c.Jurisdiction != models.Domestic {
			return models.Client{}, NewValidationError("gst_id", "only domestic clients carry a GSTIN")
		}
		c.GSTID = *upd.GSTID
	}
	if upd.VATID != nil {
		if c.Jurisdiction != models.Foreign {
			return models.Client{}, NewValidationError("vat_id", "only foreign clients carry a VAT id")
		}
		c.VATID = *upd.VATID
	}
	if err := c.Validate(); err != nil {
		return models.Client{}, NewValidationError("client", err.Error())
	}

	s.clients[idx] = c
	if err := s.store.SaveClients(s.clients); err != nil {
		return models.Client{}, err
	}
	return c, nil
}

// DeleteClient removes the client. Deletion does not cascade: invoices
// referencing the client stay listable and viewable, but rendering them
// fails with ErrClientDeleted.
func (s *Service) DeleteClient(id string) error {
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return s.store.SaveClients(s.clients)
		}
	}
	return ErrClientNotFound
}

// --- invoices ---

// CreateInvoice builds an invoice from a completed item-entry session and
// persists it. An invoice with no items in either list is rejected before
// anything is written.
func (s *Service) CreateInvoice(client models.Client, services, reimbursements []models.LineItem) (models.Invoice, error) {
	if len(services) == 0 && len(reimbursements) == 0 {
		return models.Invoice{}, NewValidationError("items", ErrEmptyInvoice.Error())
	}
	if err := validateItems(services); err != nil {
		return models.Invoice{}, err
	}
	if err := validateItems(reimbursements); err != nil {
		return models.Invoice{}, err
	}

	services = normalize(services, models.Service)
	reimbursements = normalize(reimbursements, models.Reimbursement)

	now := s.now()
	inv := models.Invoice{
		ID:             newInvoiceID(now),
		ClientID:       client.ID,
		ClientName:     client.Name,
		Date:           now.Format("2006-01-02"),
		Services:       services,
		Reimbursements: reimbursements,
	}
	inv.Total = ComputeTotal(inv.Items())

	s.invoices = append(s.invoices, inv)
	if err := s.store.SaveInvoices(s.invoices); err != nil {
		// Keep memory consistent with disk.
		s.invoices = s.invoices[:len(s.invoices)-1]
		return models.Invoice{}, err
	}

	s.log.Info().
		Str("invoice_id", inv.ID).
		Str("client", client.Name).
		Str("total", inv.Total.StringFixed(2)).
		Msg("Invoice created")
	return inv, nil
}

// normalize stamps the category on each item and pins reimbursement
// quantities to 1.
func normalize(items []models.LineItem, cat models.ItemCategory) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		item.Category = cat
		if cat == models.Reimbursement {
			item.Quantity = oneQuantity
		}
		out[i] = item
	}
	return out
}

// Invoices returns invoices, optionally filtered by a case-insensitive
// substring of the snapshotted client name.
func (s *Service) Invoices(clientFilter string) []models.Invoice {
	if clientFilter == "" {
		return s.invoices
	}
	needle := strings.ToLower(clientFilter)
	var out []models.Invoice
	for _, inv := range s.invoices {
		if strings.Contains(strings.ToLower(inv.ClientName), needle) {
			out = append(out, inv)
		}
	}
	return out
}

// GetInvoice returns the invoice with the given id.
func (s *Service) GetInvoice(id string) (models.Invoice, error) {
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

// DeleteInvoice removes the invoice and persists the collection.
func (s *Service) DeleteInvoice(id string) error {
	for i, inv := range s.invoices {
		if inv.ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return s.store.SaveInvoices(s.invoices)
		}
	}
	return ErrInvoiceNotFound
}

// InvoiceClient resolves the client an invoice references. A deleted
// client yields ErrClientDeleted; the invoice record itself is unaffected.
func (s *Service) InvoiceClient(inv models.Invoice) (models.Client, error) {
	c, err := s.GetClient(inv.ClientID)
	if errors.Is(err, ErrClientNotFound) {
		return models.Client{}, ErrClientDeleted
	}
	return c, err
}

// --- profile ---

// Profile returns the organization profile.
func (s *Service) Profile() models.Profile {
	return s.profile
}

// UpdateProfile replaces the profile and persists it.
func (s *Service) UpdateProfile(p models.Profile) error {
	if err := s.store.SaveProfile(p); err != nil {
		return err
	}
	s.profile = p
	return nil
}
