package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khaata/pkg/models"
)

// mockStore simulates the record store. Collections are plain slices and
// every save is counted so tests can assert nothing was persisted.
type mockStore struct {
	clients  []models.Client
	invoices []models.Invoice
	profile  models.Profile

	loadClientsErr  error
	loadInvoicesErr error
	saveClientsErr  error
	saveInvoicesErr error

	clientSaves  int
	invoiceSaves int
	profileSaves int
}

func (m *mockStore) LoadClients() ([]models.Client, error) {
	return m.clients, m.loadClientsErr
}

func (m *mockStore) SaveClients(clients []models.Client) error {
	if m.saveClientsErr != nil {
		return m.saveClientsErr
	}
	m.clientSaves++
	m.clients = clients
	return nil
}

func (m *mockStore) LoadInvoices() ([]models.Invoice, error) {
	return m.invoices, m.loadInvoicesErr
}

func (m *mockStore) SaveInvoices(invoices []models.Invoice) error {
	if m.saveInvoicesErr != nil {
		return m.saveInvoicesErr
	}
	m.invoiceSaves++
	m.invoices = invoices
	return nil
}

func (m *mockStore) LoadProfile() (models.Profile, error) {
	return m.profile, nil
}

func (m *mockStore) SaveProfile(p models.Profile) error {
	m.profileSaves++
	m.profile = p
	return nil
}

func newTestService(m *mockStore) *Service {
	s := NewService(m)
	s.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }
	return s
}

func domesticClient() models.Client {
	return models.Client{
		Name:         "Sharma & Co",
		Address:      "12 MG Road, Pune",
		Jurisdiction: models.Domestic,
		GSTID:        "27AAAAA0000A1Z5",
	}
}

func foreignClient() models.Client {
	return models.Client{
		Name:         "Acme",
		Address:      "1 Main St",
		Country:      "USA",
		Jurisdiction: models.Foreign,
		Currency:     "USD",
		VATID:        "VAT123",
	}
}

func TestAddClient(t *testing.T) {
	tests := []struct {
		name      string
		client    models.Client
		wantErr   bool
		checkFunc func(t *testing.T, c models.Client)
	}{
		{
			name:   "domestic client gets INR and India defaults",
			client: domesticClient(),
			checkFunc: func(t *testing.T, c models.Client) {
				assert.Equal(t, models.DomesticCurrency, c.Currency)
				assert.Equal(t, "India", c.Country)
				assert.NotEmpty(t, c.ID)
			},
		},
		{
			name:   "foreign client keeps chosen currency",
			client: foreignClient(),
			checkFunc: func(t *testing.T, c models.Client) {
				assert.Equal(t, "USD", c.Currency)
				assert.Empty(t, c.GSTID)
			},
		},
		{
			name: "domestic client with a VAT id is rejected",
			client: func() models.Client {
				c := domesticClient()
				c.VATID = "VAT999"
				return c
			}(),
			wantErr: true,
		},
		{
			name: "foreign client without VAT id is rejected",
			client: func() models.Client {
				c := foreignClient()
				c.VATID = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "foreign client with unsupported currency is rejected",
			client: func() models.Client {
				c := foreignClient()
				c.Currency = "CHF"
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockStore{}
			svc := newTestService(m)

			added, err := svc.AddClient(tt.client)
			if tt.wantErr {
				var vErr *ValidationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &vErr), "want ValidationError, got %T", err)
				assert.Zero(t, m.clientSaves, "rejected client must not be persisted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, m.clientSaves)
			tt.checkFunc(t, added)
		})
	}
}

func TestSameSecondClientIDsDiffer(t *testing.T) {
	svc := newTestService(&mockStore{})

	a, err := svc.AddClient(domesticClient())
	require.NoError(t, err)
	b, err := svc.AddClient(domesticClient())
	require.NoError(t, err)

	// The clock is frozen, so only the uuid fragment keeps these apart.
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdateClientKeepsInvariant(t *testing.T) {
	m := &mockStore{}
	svc := newTestService(m)
	c, err := svc.AddClient(foreignClient())
	require.NoError(t, err)

	t.Run("updating the matching identifier works", func(t *testing.T) {
		newVAT := "VAT456"
		updated, err := svc.UpdateClient(c.ID, ClientUpdate{VATID: &newVAT})
		require.NoError(t, err)
		assert.Equal(t, "VAT456", updated.VATID)
		assert.Empty(t, updated.GSTID)
	})

	t.Run("setting the wrong identifier is rejected", func(t *testing.T) {
		gst := "27AAAAA0000A1Z5"
		_, err := svc.UpdateClient(c.ID, ClientUpdate{GSTID: &gst})
		var vErr *ValidationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("rename does not disturb the identifier", func(t *testing.T) {
		name := "Acme Global"
		updated, err := svc.UpdateClient(c.ID, ClientUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "VAT456", updated.VATID)
	})
}

func TestCreateInvoice(t *testing.T) {
	services := []models.LineItem{
		{Description: "Design", Rate: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(5)},
	}
	reimbursements := []models.LineItem{
		{Description: "Travel", Rate: decimal.NewFromInt(250), Quantity: decimal.NewFromInt(1)},
	}

	t.Run("totals and snapshot", func(t *testing.T) {
		m := &mockStore{}
		svc := newTestService(m)
		client, err := svc.AddClient(foreignClient())
		require.NoError(t, err)

		inv, err := svc.CreateInvoice(client, services, reimbursements)
		require.NoError(t, err)

		assert.Equal(t, "750.00", inv.Total.StringFixed(2))
		assert.Equal(t, client.ID, inv.ClientID)
		assert.Equal(t, "Acme", inv.ClientName)
		assert.Equal(t, "2024-03-15", inv.Date)
		assert.Equal(t, 1, m.invoiceSaves)
		assert.Equal(t, models.Service, inv.Services[0].Category)
		assert.Equal(t, models.Reimbursement, inv.Reimbursements[0].Category)
	})

	t.Run("empty invoice is rejected before persistence", func(t *testing.T) {
		m := &mockStore{}
		svc := newTestService(m)
		client, err := svc.AddClient(foreignClient())
		require.NoError(t, err)

		_, err = svc.CreateInvoice(client, nil, nil)
		var vErr *ValidationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &vErr))
		assert.Zero(t, m.invoiceSaves, "nothing may be written for an empty invoice")
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		m := &mockStore{}
		svc := newTestService(m)
		client, err := svc.AddClient(foreignClient())
		require.NoError(t, err)

		bad := []models.LineItem{{Description: "x", Rate: decimal.NewFromInt(-5), Quantity: decimal.NewFromInt(1)}}
		_, err = svc.CreateInvoice(client, bad, nil)
		require.Error(t, err)
		assert.Zero(t, m.invoiceSaves)
	})

	t.Run("reimbursement quantity is pinned to 1", func(t *testing.T) {
		m := &mockStore{}
		svc := newTestService(m)
		client, err := svc.AddClient(foreignClient())
		require.NoError(t, err)

		odd := []models.LineItem{{Description: "Taxi", Rate: decimal.NewFromInt(40), Quantity: decimal.NewFromInt(3)}}
		inv, err := svc.CreateInvoice(client, nil, odd)
		require.NoError(t, err)
		assert.Equal(t, "1", inv.Reimbursements[0].Quantity.String())
		assert.Equal(t, "40.00", inv.Total.StringFixed(2))
	})

	t.Run("failed save keeps memory consistent", func(t *testing.T) {
		m := &mockStore{}
		svc := newTestService(m)
		client, err := svc.AddClient(foreignClient())
		require.NoError(t, err)

		m.saveInvoicesErr = errors.New("disk full")
		_, err = svc.CreateInvoice(client, services, nil)
		require.Error(t, err)
		assert.Empty(t, svc.Invoices(""), "in-memory list must match disk after a failed save")
	})
}

func TestDeleteClientLeavesInvoicesDangling(t *testing.T) {
	m := &mockStore{}
	svc := newTestService(m)
	client, err := svc.AddClient(foreignClient())
	require.NoError(t, err)

	inv, err := svc.CreateInvoice(client, []models.LineItem{
		{Description: "Design", Rate: decimal.NewFromInt(100), Quantity: decimal.NewFromInt(5)},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(client.ID))

	// Invoice stays listable and viewable.
	assert.Len(t, svc.Invoices(""), 1)
	got, err := svc.GetInvoice(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.ClientName)

	// But resolving the client for rendering fails.
	_, err = svc.InvoiceClient(got)
	assert.True(t, errors.Is(err, ErrClientDeleted))
}

func TestFindClient(t *testing.T) {
	m := &mockStore{}
	svc := newTestService(m)
	acme, err := svc.AddClient(foreignClient())
	require.NoError(t, err)
	_, err = svc.AddClient(domesticClient())
	require.NoError(t, err)

	tests := []struct {
		name    string
		hint    string
		wantID  string
		wantErr error
	}{
		{name: "exact id", hint: acme.ID, wantID: acme.ID},
		{name: "case-insensitive substring", hint: "acm", wantID: acme.ID},
		{name: "no match", hint: "globex", wantErr: ErrClientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.FindClient(tt.hint)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, c.ID)
		})
	}
}

func TestInvoiceFilterAndDelete(t *testing.T) {
	m := &mockStore{}
	svc := newTestService(m)
	acme, err := svc.AddClient(foreignClient())
	require.NoError(t, err)
	sharma, err := svc.AddClient(domesticClient())
	require.NoError(t, err)

	work := []models.LineItem{{Description: "Work", Rate: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(1)}}
	invA, err := svc.CreateInvoice(acme, work, nil)
	require.NoError(t, err)
	_, err = svc.CreateInvoice(sharma, work, nil)
	require.NoError(t, err)

	assert.Len(t, svc.Invoices(""), 2)
	assert.Len(t, svc.Invoices("acme"), 1)
	assert.Len(t, svc.Invoices("sharma"), 1)

	require.NoError(t, svc.DeleteInvoice(invA.ID))
	assert.Empty(t, svc.Invoices("acme"))
	assert.True(t, errors.Is(svc.DeleteInvoice(invA.ID), ErrInvoiceNotFound))
}

func TestUpdateProfile(t *testing.T) {
	m := &mockStore{profile: models.DefaultProfile()}
	svc := newTestService(m)

	p := svc.Profile()
	p.Name = "Jane Doe"
	require.NoError(t, svc.UpdateProfile(p))

	assert.Equal(t, "Jane Doe", svc.Profile().Name)
	assert.Equal(t, 1, m.profileSaves)
}
