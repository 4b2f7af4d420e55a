package crm_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/application/crm"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeQuoteRepo struct {
	quotes map[string]*entity.Quote
	items  map[string][]*entity.QuoteItem
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes: make(map[string]*entity.Quote),
		items:  make(map[string][]*entity.QuoteItem),
	}
}

func (f *fakeQuoteRepo) Create(q *entity.Quote) error { f.quotes[q.ID] = q; return nil }
func (f *fakeQuoteRepo) CreateItem(item *entity.QuoteItem) error {
	f.items[item.QuoteID] = append(f.items[item.QuoteID], item)
	return nil
}
func (f *fakeQuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return f.quotes[id], nil
}
func (f *fakeQuoteRepo) GetItems(quoteID string) ([]*entity.QuoteItem, error) {
	return f.items[quoteID], nil
}
func (f *fakeQuoteRepo) ListByClient(clientID string, _, _ int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range f.quotes {
		if q.ClientID == clientID {
			out = append(out, q)
		}
	}
	return out, nil
}
func (f *fakeQuoteRepo) UpdateStatus(id, status string) error {
	f.quotes[id].Status = status
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (f *fakeClientRepo) Create(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) GetByTaxID(taxID string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeClientRepo) List(int, int) ([]*entity.Client, error) { return nil, nil }
func (f *fakeClientRepo) Update(c *entity.Client) error {
	f.clients[c.ID] = c
	return nil
}

type fakeJobRepo struct {
	jobs map[string]*entity.Job
}

func (f *fakeJobRepo) Create(j *entity.Job) error { f.jobs[j.ID] = j; return nil }
func (f *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	return f.jobs[id], nil
}
func (f *fakeJobRepo) ListByStatus(string, int, int) ([]*entity.Job, error) { return nil, nil }
func (f *fakeJobRepo) ListOpenDueBefore(time.Time) ([]*entity.Job, error)   { return nil, nil }
func (f *fakeJobRepo) UpdateStatus(string, string) error                    { return nil }
func (f *fakeJobRepo) UpdateProgress(string, int) error                     { return nil }
func (f *fakeJobRepo) UpdateAssignee(string, string) error                  { return nil }

type quoteFixture struct {
	uc     *crm.QuoteUseCase
	quotes *fakeQuoteRepo
	jobs   *fakeJobRepo
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	quotes := newFakeQuoteRepo()
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", Name: "Alcaldía Local", TaxID: "900123456"},
	}}
	jobs := &fakeJobRepo{jobs: make(map[string]*entity.Job)}
	return &quoteFixture{uc: crm.NewQuoteUseCase(quotes, clients, jobs), quotes: quotes, jobs: jobs}
}

func (fx *quoteFixture) seedQuote(id, status string, validTo time.Time) {
	fx.quotes.quotes[id] = &entity.Quote{
		ID: id, ClientID: "client-1", Title: "Señalización sede norte",
		Status: status, Total: decimal.NewFromInt(2500), ValidTo: validTo,
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteCreate_CalculaTotales(t *testing.T) {
	fx := newQuoteFixture(t)

	resp, err := fx.uc.Create(dto.CreateQuoteRequest{
		ClientID: "client-1",
		Title:    "Señalización sede norte",
		Items: []dto.QuoteItemRequest{
			{Description: "Aviso acrílico", Quantity: dec("4"), UnitPrice: dec("150.50")},
			{Description: "Instalación", Quantity: dec("1"), UnitPrice: dec("200")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QuoteStatusDraft, resp.Status)
	require.Len(t, resp.Items, 2)
	// 4 × 150.50 = 602, más 200 de instalación.
	assert.True(t, resp.Items[0].Subtotal.Equal(dec("602")),
		"subtotal calculado: %s", resp.Items[0].Subtotal)
	assert.True(t, resp.Total.Equal(dec("802")), "total calculado: %s", resp.Total)
}

func TestQuoteCreate_RechazaLineasInvalidas(t *testing.T) {
	fx := newQuoteFixture(t)

	cases := []struct {
		name string
		item dto.QuoteItemRequest
	}{
		{"cantidad cero", dto.QuoteItemRequest{Description: "Aviso", Quantity: dec("0"), UnitPrice: dec("10")}},
		{"cantidad negativa", dto.QuoteItemRequest{Description: "Aviso", Quantity: dec("-1"), UnitPrice: dec("10")}},
		{"precio negativo", dto.QuoteItemRequest{Description: "Aviso", Quantity: dec("1"), UnitPrice: dec("-10")}},
		{"sin descripción", dto.QuoteItemRequest{Quantity: dec("1"), UnitPrice: dec("10")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.uc.Create(dto.CreateQuoteRequest{
				ClientID: "client-1", Title: "X", Items: []dto.QuoteItemRequest{tc.item},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestQuoteCreate_ClienteInexistente(t *testing.T) {
	fx := newQuoteFixture(t)

	_, err := fx.uc.Create(dto.CreateQuoteRequest{
		ClientID: "no-existe", Title: "X",
		Items: []dto.QuoteItemRequest{{Description: "Aviso", Quantity: dec("1"), UnitPrice: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteSend_SoloDesdeDraft(t *testing.T) {
	fx := newQuoteFixture(t)
	fx.seedQuote("q-1", entity.QuoteStatusDraft, time.Time{})

	resp, err := fx.uc.Send("q-1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusSent, resp.Status)

	_, err = fx.uc.Send("q-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuoteReject_SoloDesdeSent(t *testing.T) {
	fx := newQuoteFixture(t)
	fx.seedQuote("q-1", entity.QuoteStatusDraft, time.Time{})

	_, err := fx.uc.Reject("q-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	fx.quotes.quotes["q-1"].Status = entity.QuoteStatusSent
	resp, err := fx.uc.Reject("q-1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusRejected, resp.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Accept
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteAccept_AbreElTrabajo(t *testing.T) {
	fx := newQuoteFixture(t)
	fx.seedQuote("q-1", entity.QuoteStatusSent, time.Now().AddDate(0, 0, 10))

	resp, err := fx.uc.Accept("q-1")
	require.NoError(t, err)

	assert.Equal(t, entity.QuoteStatusAccepted, resp.Quote.Status)
	assert.Equal(t, "q-1", resp.Job.QuoteID)
	assert.Equal(t, "client-1", resp.Job.ClientID)
	assert.Equal(t, "Señalización sede norte", resp.Job.Title)
	assert.Equal(t, entity.JobStatusPending, resp.Job.Status)

	created := fx.jobs.jobs[resp.Job.ID]
	require.NotNil(t, created, "el trabajo debe quedar persistido")
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), created.DueDate, time.Minute)
}

func TestQuoteAccept_SoloDesdeSent(t *testing.T) {
	fx := newQuoteFixture(t)
	fx.seedQuote("q-1", entity.QuoteStatusDraft, time.Time{})

	_, err := fx.uc.Accept("q-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, fx.jobs.jobs)
}

func TestQuoteAccept_Vencida(t *testing.T) {
	fx := newQuoteFixture(t)
	fx.seedQuote("q-1", entity.QuoteStatusSent, time.Now().AddDate(0, 0, -1))

	_, err := fx.uc.Accept("q-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, fx.jobs.jobs)
	assert.Equal(t, entity.QuoteStatusSent, fx.quotes.quotes["q-1"].Status,
		"una cotización vencida no cambia de estado")
}
