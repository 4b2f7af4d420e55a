package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.VendorInvoice
	items    map[string][]*entity.InvoiceLineItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.VendorInvoice),
		items:    make(map[string][]*entity.InvoiceLineItem),
	}
}

func (f *fakeInvoiceRepo) Create(inv *entity.VendorInvoice) error {
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) CreateLineItem(item *entity.InvoiceLineItem) error {
	f.items[item.InvoiceID] = append(f.items[item.InvoiceID], item)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.VendorInvoice, error) {
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	return f.items[invoiceID], nil
}

func (f *fakeInvoiceRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.VendorInvoice, error) {
	var out []*entity.VendorInvoice
	for _, inv := range f.invoices {
		if inv.VendorID == vendorID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

type fakePORepo struct {
	orders map[string]*entity.PurchaseOrder
}

func (f *fakePORepo) Create(po *entity.PurchaseOrder) error { f.orders[po.ID] = po; return nil }
func (f *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return f.orders[id], nil
}
func (f *fakePORepo) ListByVendor(string, int, int) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}
func (f *fakePORepo) UpdateStatus(string, string) error { return nil }

type fakeVendorRepo struct {
	vendors map[string]*entity.Vendor
}

func (f *fakeVendorRepo) Create(v *entity.Vendor) error { f.vendors[v.ID] = v; return nil }
func (f *fakeVendorRepo) GetByID(id string) (*entity.Vendor, error) {
	return f.vendors[id], nil
}
func (f *fakeVendorRepo) List(int, int) ([]*entity.Vendor, error) { return nil, nil }
func (f *fakeVendorRepo) Update(v *entity.Vendor) error {
	f.vendors[v.ID] = v
	return nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(*entity.User) error                { return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByVendor(vendorID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.VendorID == vendorID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepo) ListByUser(string, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkRead(string, string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type reviewFixture struct {
	uc        *billing.ReviewInvoiceUseCase
	invoices  *fakeInvoiceRepo
	orders    *fakePORepo
	vendors   *fakeVendorRepo
	users     *fakeUserRepo
	notifRepo *fakeNotificationRepo
	hub       *realtime.Hub
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// newReviewFixture arma una factura de 1000 contra una orden de 1000 del
// mismo proveedor activo, con fecha de hoy y una línea completa.
func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	now := time.Now()

	invoices := newFakeInvoiceRepo()
	orders := &fakePORepo{orders: make(map[string]*entity.PurchaseOrder)}
	vendors := &fakeVendorRepo{vendors: make(map[string]*entity.Vendor)}
	users := &fakeUserRepo{users: []*entity.User{
		{ID: "user-vendor", Role: entity.RoleVendor, VendorID: "vendor-a"},
	}}
	notifRepo := &fakeNotificationRepo{}
	hub := realtime.NewHub(nil)

	vendors.vendors["vendor-a"] = &entity.Vendor{ID: "vendor-a", Name: "Papeles SAS", Active: true}
	orders.orders["po-1"] = &entity.PurchaseOrder{
		ID: "po-1", VendorID: "vendor-a", Description: "Papel bond", Total: dec("1000"),
		Status: entity.POStatusOpen, IssuedAt: now,
	}
	invoices.invoices["inv-1"] = &entity.VendorInvoice{
		ID: "inv-1", VendorID: "vendor-a", PurchaseOrderID: "po-1", Number: "F-001",
		InvoiceDate: now, DueDate: now.AddDate(0, 0, 15), Total: dec("1000"),
		Status: entity.InvoiceStatusSubmitted,
	}
	invoices.items["inv-1"] = []*entity.InvoiceLineItem{
		{ID: "li-1", InvoiceID: "inv-1", Description: "Resma", Quantity: decPtr("10"), UnitPrice: decPtr("100")},
	}

	notifier := notify.NewNotifier(notifRepo, hub, nil)
	uc := billing.NewReviewInvoiceUseCase(
		invoices, orders, vendors, users, notifier, validation.Policy{}, nil,
	)
	return &reviewFixture{
		uc: uc, invoices: invoices, orders: orders, vendors: vendors,
		users: users, notifRepo: notifRepo, hub: hub,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_FacturaLimpia_PasaAValidated(t *testing.T) {
	fx := newReviewFixture(t)

	report, err := fx.uc.Validate(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, entity.InvoiceStatusValidated, report.Status)
	assert.Equal(t, entity.InvoiceStatusValidated, fx.invoices.invoices["inv-1"].Status)
}

func TestValidate_ProveedorEquivocado_PasaARejected(t *testing.T) {
	fx := newReviewFixture(t)
	fx.invoices.invoices["inv-1"].VendorID = "vendor-b"
	fx.vendors.vendors["vendor-b"] = &entity.Vendor{ID: "vendor-b", Name: "Otro SAS", Active: true}

	report, err := fx.uc.Validate(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	assert.NotEmpty(t, report.Errors)
	assert.Equal(t, entity.InvoiceStatusRejected, report.Status)
	assert.Equal(t, entity.InvoiceStatusRejected, fx.invoices.invoices["inv-1"].Status)
}

func TestValidate_NotificaAlProveedor(t *testing.T) {
	fx := newReviewFixture(t)

	sub := fx.hub.Subscribe(realtime.NotificationTopic("user-vendor"))
	defer fx.hub.Unsubscribe(sub)

	_, err := fx.uc.Validate(context.Background(), "inv-1")
	require.NoError(t, err)

	// Persistida para el historial...
	require.Len(t, fx.notifRepo.created, 1)
	assert.Equal(t, entity.NotifyInvoiceStatus, fx.notifRepo.created[0].Type)
	assert.Equal(t, "user-vendor", fx.notifRepo.created[0].UserID)

	// ...y difundida en vivo por su canal.
	select {
	case event := <-sub.C():
		assert.Equal(t, realtime.EventInvoiceStatus, event.Type)
		assert.Equal(t, entity.InvoiceStatusValidated, event.Payload["status"])
	default:
		t.Fatal("el canal de notificaciones no recibió el evento")
	}
}

func TestValidate_FacturaAprobada_EsInmutable(t *testing.T) {
	fx := newReviewFixture(t)
	fx.invoices.invoices["inv-1"].Status = entity.InvoiceStatusApproved

	_, err := fx.uc.Validate(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvoiceImmutable)
}

func TestValidate_FacturaInexistente(t *testing.T) {
	fx := newReviewFixture(t)

	_, err := fx.uc.Validate(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DesdeValidated_Aprueba(t *testing.T) {
	fx := newReviewFixture(t)
	fx.invoices.invoices["inv-1"].Status = entity.InvoiceStatusValidated

	report, err := fx.uc.Approve(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.Equal(t, entity.InvoiceStatusApproved, fx.invoices.invoices["inv-1"].Status)
}

func TestApprove_DesdeSubmitted_Rechazado(t *testing.T) {
	fx := newReviewFixture(t)

	_, err := fx.uc.Approve(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// La revalidación en la aprobación detecta datos que cambiaron después de la
// validación original: la factura regresa a rejected en vez de aprobarse.
func TestApprove_RevalidacionConDefectos_RegresaARejected(t *testing.T) {
	fx := newReviewFixture(t)
	fx.invoices.invoices["inv-1"].Status = entity.InvoiceStatusValidated
	fx.vendors.vendors["vendor-a"].Active = false

	report, err := fx.uc.Approve(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	assert.Equal(t, entity.InvoiceStatusRejected, fx.invoices.invoices["inv-1"].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	invoices *fakeInvoiceRepo
	orders   *fakePORepo
}

func (f *fakeTxRunner) RunBilling(_ context.Context, fn func(
	repository.VendorInvoiceRepository, repository.PurchaseOrderRepository,
) error) error {
	return fn(f.invoices, f.orders)
}

func TestSubmit_RegistraFacturaConLineas(t *testing.T) {
	fx := newReviewFixture(t)
	uc := billing.NewSubmitInvoiceUseCase(
		&fakeTxRunner{invoices: fx.invoices, orders: fx.orders}, fx.orders,
	)

	resp, err := uc.Submit(context.Background(), "vendor-a", dto.SubmitInvoiceRequest{
		PurchaseOrderID: "po-1",
		Number:          "F-002",
		InvoiceDate:     time.Now(),
		DueDate:         time.Now().AddDate(0, 0, 30),
		Total:           dec("500"),
		LineItems: []dto.LineItemRequest{
			{Description: "Tintas", Quantity: decPtr("5"), UnitPrice: decPtr("100")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusSubmitted, resp.Status)
	require.Len(t, resp.LineItems, 1)

	stored := fx.invoices.invoices[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "F-002", stored.Number)
	assert.Len(t, fx.invoices.items[resp.ID], 1)
}

func TestSubmit_OrdenInexistente(t *testing.T) {
	fx := newReviewFixture(t)
	uc := billing.NewSubmitInvoiceUseCase(
		&fakeTxRunner{invoices: fx.invoices, orders: fx.orders}, fx.orders,
	)

	_, err := uc.Submit(context.Background(), "vendor-a", dto.SubmitInvoiceRequest{
		PurchaseOrderID: "po-inexistente",
		Number:          "F-003",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
