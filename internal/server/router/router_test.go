package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pureclean/platform/internal/domain/models"
	"github.com/pureclean/platform/internal/server/handlers"
	authsvc "github.com/pureclean/platform/internal/service/auth"
	companysvc "github.com/pureclean/platform/internal/service/company"
	orderssvc "github.com/pureclean/platform/internal/service/orders"
	reportingsvc "github.com/pureclean/platform/internal/service/reporting"
	staffsvc "github.com/pureclean/platform/internal/service/staff"
	"github.com/pureclean/platform/pkg/clients/gemini"
)

// memStore is an in-memory stand-in for the document store, wide enough to
// back every service at once.
type memStore struct {
	companies map[string]models.Company
	orders    map[string]models.Order
	employees map[string]models.Employee
	expenses  map[string]models.Expense
	reports   []models.DailyReport
	profile   *models.AdminProfile
	settings  *models.DashboardSettings
}

func newMemStore() *memStore {
	return &memStore{
		companies: make(map[string]models.Company),
		orders:    make(map[string]models.Order),
		employees: make(map[string]models.Employee),
		expenses:  make(map[string]models.Expense),
	}
}

func (m *memStore) InsertCompany(ctx context.Context, company models.Company) error {
	m.companies[company.ID] = company
	return nil
}

func (m *memStore) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) FindCompanyByLogin(ctx context.Context, login string) (*models.Company, error) {
	for _, c := range m.companies {
		if c.Login == login {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var out []models.Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) error {
	c := m.companies[id]
	if patch.IsEnabled != nil {
		c.IsEnabled = *patch.IsEnabled
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	m.companies[id] = c
	return nil
}

func (m *memStore) DeleteCompany(ctx context.Context, id string) error {
	delete(m.companies, id)
	return nil
}

func (m *memStore) InsertOrder(ctx context.Context, order models.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *memStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memStore) ListOrdersByCompany(ctx context.Context, companyID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	o := m.orders[id]
	o.Status = status
	m.orders[id] = o
	return nil
}

func (m *memStore) SetOrderPayment(ctx context.Context, id string, payment models.Payment) error {
	o := m.orders[id]
	o.Payment = payment
	m.orders[id] = o
	return nil
}

func (m *memStore) SetOrderCustomer(ctx context.Context, id string, customer models.Customer) error {
	o := m.orders[id]
	o.Customer = customer
	m.orders[id] = o
	return nil
}

func (m *memStore) SetOrderDetails(ctx context.Context, id string, details models.OrderDetails) error {
	o := m.orders[id]
	o.Details = details
	m.orders[id] = o
	return nil
}

func (m *memStore) DeleteOrder(ctx context.Context, id string) error {
	delete(m.orders, id)
	return nil
}

func (m *memStore) InsertEmployee(ctx context.Context, employee models.Employee) error {
	m.employees[employee.ID] = employee
	return nil
}

func (m *memStore) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) ListEmployeesByCompany(ctx context.Context, companyID string) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range m.employees {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpdateEmployee(ctx context.Context, id string, patch models.EmployeePatch) error {
	e := m.employees[id]
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.IsActive != nil {
		e.IsActive = *patch.IsActive
	}
	m.employees[id] = e
	return nil
}

func (m *memStore) SetEmployeeAttendance(ctx context.Context, id string, attendance []string) error {
	e := m.employees[id]
	e.Attendance = attendance
	m.employees[id] = e
	return nil
}

func (m *memStore) DeleteEmployee(ctx context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *memStore) InsertExpense(ctx context.Context, expense models.Expense) error {
	m.expenses[expense.ID] = expense
	return nil
}

func (m *memStore) ListExpensesByCompany(ctx context.Context, companyID string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range m.expenses {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) DeleteExpense(ctx context.Context, id string) error {
	delete(m.expenses, id)
	return nil
}

func (m *memStore) InsertDailyReport(ctx context.Context, report models.DailyReport) error {
	m.reports = append(m.reports, report)
	return nil
}

func (m *memStore) LoadAdminProfile(ctx context.Context) (models.AdminProfile, error) {
	if m.profile == nil {
		return models.DefaultAdminProfile(), nil
	}
	return *m.profile, nil
}

func (m *memStore) SaveAdminProfile(ctx context.Context, profile models.AdminProfile) error {
	m.profile = &profile
	return nil
}

func (m *memStore) LoadDashboardSettings(ctx context.Context) (models.DashboardSettings, error) {
	if m.settings == nil {
		return models.DefaultDashboardSettings(), nil
	}
	return *m.settings, nil
}

func (m *memStore) SaveDashboardSettings(ctx context.Context, settings models.DashboardSettings) error {
	m.settings = &settings
	return nil
}

func newTestEngine(t *testing.T) (http.Handler, *memStore) {
	t.Helper()

	store := newMemStore()
	tokens := authsvc.NewTokenManager("router-test-secret", time.Hour)
	gate := authsvc.NewService(store, tokens, nil)
	ordersSvc := orderssvc.NewService(store, nil)

	engine := New(Handlers{
		Auth:     handlers.NewAuthHandler(gate, nil),
		Intake:   handlers.NewIntakeHandler(ordersSvc, nil),
		Orders:   handlers.NewOrderHandler(ordersSvc, gemini.Disabled{}, nil),
		Company:  handlers.NewCompanyHandler(companysvc.NewService(store, nil), nil),
		Employee: handlers.NewEmployeeHandler(staffsvc.NewService(store, nil), nil),
		Report:   handlers.NewReportHandler(reportingsvc.NewService(store, nil), nil),
		Settings: handlers.NewSettingsHandler(store, nil),
	}, gate, nil)

	return engine, store
}

func doJSON(t *testing.T, engine http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func login(t *testing.T, engine http.Handler, user, pass string) string {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/api/login", "", map[string]any{"login": user, "password": pass})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[map[string]any](t, rec)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	engine, _ := newTestEngine(t)
	now := time.Now()

	superToken := login(t, engine, "superadmin", "superadmin")

	// Provision a tenant with a live subscription window.
	rec := doJSON(t, engine, http.MethodPost, "/api/superadmin/companies", superToken, map[string]any{
		"name":      "Demo Laundry",
		"login":     "demo",
		"password":  "demo1",
		"isEnabled": true,
		"validFrom": now.AddDate(0, 0, -1).Format(time.RFC3339),
		"validTo":   now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Company](t, rec)
	require.NotEmpty(t, created.ID)

	adminToken := login(t, engine, "demo", "demo1")

	// Customer drops off laundry through the QR-code route. No auth needed.
	rec = doJSON(t, engine, http.MethodPost, "/api/c/"+created.ID+"/orders", "", map[string]any{
		"firstName":   "Bekzod",
		"lastName":    "Karimov",
		"phone":       "+998901234567",
		"itemCount":   4,
		"serviceType": "Wash & Fold",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Zero(t, order.Payment.Total)
	assert.Zero(t, order.Payment.Advance)
	assert.Zero(t, order.Payment.Remaining)

	// The order shows up on the admin dashboard.
	rec = doJSON(t, engine, http.MethodGet, "/api/admin/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[[]models.Order](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	// Settling before READY is refused.
	rec = doJSON(t, engine, http.MethodPost, "/api/admin/orders/"+order.ID+"/settle", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Staff record the price and the customer's advance.
	rec = doJSON(t, engine, http.MethodPut, "/api/admin/orders/"+order.ID+"/payment", adminToken,
		map[string]any{"total": 80000, "advance": 20000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order = decode[models.Order](t, rec)
	assert.Equal(t, int64(60000), order.Payment.Remaining)

	rec = doJSON(t, engine, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", adminToken,
		map[string]any{"status": "READY"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Customer pays the balance at pickup.
	rec = doJSON(t, engine, http.MethodPost, "/api/admin/orders/"+order.ID+"/settle", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order = decode[models.Order](t, rec)
	assert.Equal(t, int64(80000), order.Payment.Advance)
	assert.Zero(t, order.Payment.Remaining)
	assert.Equal(t, models.StatusReady, order.Status)
}

func TestAccessControl(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Now()

	// No token on an admin route.
	rec := doJSON(t, engine, http.MethodGet, "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	superToken := login(t, engine, "superadmin", "superadmin")

	rec = doJSON(t, engine, http.MethodPost, "/api/superadmin/companies", superToken, map[string]any{
		"name":      "Gated Laundry",
		"login":     "gated",
		"password":  "pw",
		"isEnabled": true,
		"validFrom": now.AddDate(0, 0, -1).Format(time.RFC3339),
		"validTo":   now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	company := decode[models.Company](t, rec)

	adminToken := login(t, engine, "gated", "pw")

	// Admin tokens carry no weight on the super-admin surface.
	rec = doJSON(t, engine, http.MethodGet, "/api/superadmin/companies", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Flip the kill switch; the already-issued admin token hits the gate on
	// its very next request.
	rec = doJSON(t, engine, http.MethodPost, "/api/superadmin/companies/"+company.ID+"/toggle", superToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "subscription_inactive")

	// The public intake route and confirmation view ignore the gate.
	order := models.Order{ID: "PC-9999", CompanyID: company.ID, Status: models.StatusNew}
	store.orders[order.ID] = order
	rec = doJSON(t, engine, http.MethodGet, "/api/orders/PC-9999", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIntakeWithoutCompanyContext(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/orders", "", map[string]any{
		"firstName":   "Lost",
		"lastName":    "Customer",
		"phone":       "+998900000000",
		"serviceType": "Wash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "QR code")
}

func TestIntakeFallsBackToAdminSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	now := time.Now()

	superToken := login(t, engine, "superadmin", "superadmin")
	rec := doJSON(t, engine, http.MethodPost, "/api/superadmin/companies", superToken, map[string]any{
		"name":      "Walk-in Laundry",
		"login":     "walkin",
		"password":  "pw",
		"isEnabled": true,
		"validFrom": now.AddDate(0, 0, -1).Format(time.RFC3339),
		"validTo":   now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	company := decode[models.Company](t, rec)

	adminToken := login(t, engine, "walkin", "pw")

	// Front-desk staff file a walk-in through the plain route; the order
	// lands under their own company.
	rec = doJSON(t, engine, http.MethodPost, "/api/orders", adminToken, map[string]any{
		"firstName":   "Walkin",
		"lastName":    "Guest",
		"phone":       "+998901112233",
		"serviceType": "Ironing",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Equal(t, company.ID, order.CompanyID)
}

func TestCrossTenantRecordsHidden(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Now()

	superToken := login(t, engine, "superadmin", "superadmin")
	rec := doJSON(t, engine, http.MethodPost, "/api/superadmin/companies", superToken, map[string]any{
		"name":      "Tenant A",
		"login":     "tena",
		"password":  "pw",
		"isEnabled": true,
		"validFrom": now.AddDate(0, 0, -1).Format(time.RFC3339),
		"validTo":   now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// An order belonging to some other tenant entirely.
	store.orders["PC-0042"] = models.Order{ID: "PC-0042", CompanyID: "COMP-OTHER"}

	adminToken := login(t, engine, "tena", "pw")
	rec = doJSON(t, engine, http.MethodGet, "/api/admin/orders/PC-0042", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, fmt.Sprintf("body: %s", rec.Body.String()))

	// Same for expenses: knowing another tenant's id is not enough to
	// delete its record.
	store.expenses["EXP-7777"] = models.Expense{ID: "EXP-7777", CompanyID: "COMP-OTHER", Date: "2025-06-01"}
	rec = doJSON(t, engine, http.MethodDelete, "/api/admin/expenses/EXP-7777", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	assert.Contains(t, store.expenses, "EXP-7777")
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestEngine(t)

	rec := doJSON(t, engine, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
