package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pureclean/platform/internal/domain/models"
)

type fakeStore struct {
	orders map[string]models.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: make(map[string]models.Order)}
}

func (f *fakeStore) InsertOrder(ctx context.Context, order models.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (f *fakeStore) ListOrdersByCompany(ctx context.Context, companyID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	return nil
}

func (f *fakeStore) SetOrderPayment(ctx context.Context, id string, payment models.Payment) error {
	o := f.orders[id]
	o.Payment = payment
	f.orders[id] = o
	return nil
}

func (f *fakeStore) SetOrderCustomer(ctx context.Context, id string, customer models.Customer) error {
	o := f.orders[id]
	o.Customer = customer
	f.orders[id] = o
	return nil
}

func (f *fakeStore) SetOrderDetails(ctx context.Context, id string, details models.OrderDetails) error {
	o := f.orders[id]
	o.Details = details
	f.orders[id] = o
	return nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, nil)
}

func TestCreateIntakeForcesNewAndZeroPayment(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	tg := "@bekzod"
	order, err := svc.CreateIntake(context.Background(), IntakeInput{
		CompanyID:   "COMP-100001",
		FirstName:   "Bekzod",
		LastName:    "Karimov",
		Phone:       "+998901234567",
		Telegram:    &tg,
		ItemCount:   3,
		ServiceType: "Dry cleaning",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, models.Payment{}, order.Payment)
	assert.Equal(t, "COMP-100001", order.CompanyID)
	assert.Regexp(t, `^PC-\d{4}$`, order.ID)
	assert.False(t, order.Details.DateIn.IsZero())

	stored, err := store.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusNew, stored.Status)
}

func TestCreateIntakeRequiresCompanyContext(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreateIntake(context.Background(), IntakeInput{FirstName: "Lost"})
	assert.ErrorIs(t, err, ErrNoCompanyContext)
}

func TestCreateIntakeFloorsItemCount(t *testing.T) {
	svc := newTestService(newFakeStore())

	order, err := svc.CreateIntake(context.Background(), IntakeInput{CompanyID: "COMP-1", ItemCount: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, order.Details.ItemCount)
}

func TestGetForCompanyHidesForeignOrders(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-1111"] = models.Order{ID: "PC-1111", CompanyID: "COMP-A"}
	svc := newTestService(store)

	order, err := svc.GetForCompany(context.Background(), "PC-1111", "COMP-A")
	require.NoError(t, err)
	assert.Equal(t, "PC-1111", order.ID)

	_, err = svc.GetForCompany(context.Background(), "PC-1111", "COMP-B")
	assert.ErrorIs(t, err, ErrNotFound)

	// The unscoped confirmation lookup still sees it.
	order, err = svc.Get(context.Background(), "PC-1111")
	require.NoError(t, err)
	assert.Equal(t, "COMP-A", order.CompanyID)
}

func TestListNewestFirst(t *testing.T) {
	store := newFakeStore()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store.orders["PC-0001"] = models.Order{ID: "PC-0001", CompanyID: "COMP-A", CreatedAt: base}
	store.orders["PC-0002"] = models.Order{ID: "PC-0002", CompanyID: "COMP-A", CreatedAt: base.Add(time.Hour)}
	store.orders["PC-0003"] = models.Order{ID: "PC-0003", CompanyID: "COMP-B", CreatedAt: base.Add(2 * time.Hour)}
	svc := newTestService(store)

	orders, err := svc.List(context.Background(), "COMP-A")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "PC-0002", orders[0].ID)
	assert.Equal(t, "PC-0001", orders[1].ID)
}

func TestSetStatusFreeTransitions(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-2222"] = models.Order{ID: "PC-2222", CompanyID: "COMP-A", Status: models.StatusNew}
	svc := newTestService(store)

	// Any of the four states is reachable from any other, including backwards.
	for _, status := range []models.OrderStatus{
		models.StatusDelivered, models.StatusWashing, models.StatusReady, models.StatusNew,
	} {
		order, err := svc.SetStatus(context.Background(), "PC-2222", "COMP-A", status)
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}

	_, err := svc.SetStatus(context.Background(), "PC-2222", "COMP-A", "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSavePaymentDerivesRemaining(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-3333"] = models.Order{ID: "PC-3333", CompanyID: "COMP-A"}
	svc := newTestService(store)

	order, err := svc.SavePayment(context.Background(), "PC-3333", "COMP-A", 80000, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), order.Payment.Remaining)

	// Overpayment floors remaining at zero instead of going negative.
	order, err = svc.SavePayment(context.Background(), "PC-3333", "COMP-A", 40000, 60000)
	require.NoError(t, err)
	assert.Zero(t, order.Payment.Remaining)
}

func TestSettleRemaining(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-4444"] = models.Order{
		ID:        "PC-4444",
		CompanyID: "COMP-A",
		Status:    models.StatusReady,
		Payment:   models.Payment{Total: 80000, Advance: 20000, Remaining: 60000},
	}
	svc := newTestService(store)

	order, err := svc.SettleRemaining(context.Background(), "PC-4444", "COMP-A")
	require.NoError(t, err)
	assert.Equal(t, int64(80000), order.Payment.Advance)
	assert.Zero(t, order.Payment.Remaining)
	// Settlement never advances the workflow.
	assert.Equal(t, models.StatusReady, order.Status)

	// A second settle finds nothing owed.
	_, err = svc.SettleRemaining(context.Background(), "PC-4444", "COMP-A")
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSettleRemainingRequiresReady(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-5555"] = models.Order{
		ID:        "PC-5555",
		CompanyID: "COMP-A",
		Status:    models.StatusWashing,
		Payment:   models.Payment{Total: 50000, Advance: 10000, Remaining: 40000},
	}
	svc := newTestService(store)

	_, err := svc.SettleRemaining(context.Background(), "PC-5555", "COMP-A")
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestUpdateInfoPreservesDateIn(t *testing.T) {
	store := newFakeStore()
	dateIn := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	store.orders["PC-6666"] = models.Order{
		ID:        "PC-6666",
		CompanyID: "COMP-A",
		Details:   models.OrderDetails{ItemCount: 2, ServiceType: "Wash", DateIn: dateIn},
	}
	svc := newTestService(store)

	order, err := svc.UpdateInfo(context.Background(), "PC-6666", "COMP-A",
		&models.Customer{FirstName: "Aziza", Phone: "+998907654321"},
		&models.OrderDetails{ItemCount: 5, ServiceType: "Ironing"})
	require.NoError(t, err)

	assert.Equal(t, "Aziza", order.Customer.FirstName)
	assert.Equal(t, 5, order.Details.ItemCount)
	assert.Equal(t, dateIn, order.Details.DateIn)
}

func TestDeleteScoped(t *testing.T) {
	store := newFakeStore()
	store.orders["PC-7777"] = models.Order{ID: "PC-7777", CompanyID: "COMP-A"}
	svc := newTestService(store)

	err := svc.Delete(context.Background(), "PC-7777", "COMP-B")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "PC-7777", "COMP-A"))
	_, err = svc.Get(context.Background(), "PC-7777")
	assert.ErrorIs(t, err, ErrNotFound)
}
