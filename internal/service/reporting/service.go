package reporting

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
)

var (
	// ErrBadDate rejects expense dates that are not calendar days.
	ErrBadDate = errors.New("expense date must be YYYY-MM-DD")

	// ErrNotFound covers missing expenses and expenses of another company.
	ErrNotFound = errors.New("expense not found")
)

// Store is the slice of the document store the service needs.
type Store interface {
	ListOrdersByCompany(ctx context.Context, companyID string) ([]models.Order, error)
	ListExpensesByCompany(ctx context.Context, companyID string) ([]models.Expense, error)
	InsertExpense(ctx context.Context, expense models.Expense) error
	GetExpense(ctx context.Context, id string) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
	InsertDailyReport(ctx context.Context, report models.DailyReport) error
}

// ExpenseInput carries a new expense record from the admin form.
type ExpenseInput struct {
	Date     string
	Product  string
	Quantity float64
	Unit     string
	Amount   int64
	Notes    *string
}

// MonthlyReport is the monthly view: per-day metrics plus window totals and
// the fixed-rate expense breakdown of the report page.
type MonthlyReport struct {
	Days          []models.DailyMetric    `json:"days"`
	TotalRevenue  int64                   `json:"totalRevenue"`
	TotalExpenses int64                   `json:"totalExpenses"`
	TotalProfit   int64                   `json:"totalProfit"`
	Breakdown     models.ExpenseBreakdown `json:"breakdown"`
}

// Service computes dashboard figures as plain in-memory folds over a
// company's orders and expenses, owns expense records, and produces the
// nightly report snapshots.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	randID func() string
}

// NewService wires a new reporting service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		randID: func() string { return fmt.Sprintf("EXP-%04d", 1000+rand.Intn(9000)) },
	}
}

// --- expenses ---

// AddExpense records a new expense for the company.
func (s *Service) AddExpense(ctx context.Context, companyID string, in ExpenseInput) (*models.Expense, error) {
	if _, err := time.Parse(models.DateKey, in.Date); err != nil {
		return nil, ErrBadDate
	}

	expense := models.Expense{
		ID:        s.randID(),
		CompanyID: companyID,
		Date:      in.Date,
		Product:   in.Product,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Amount:    in.Amount,
		Notes:     in.Notes,
	}

	if err := s.store.InsertExpense(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns the company's expenses, newest date first.
func (s *Service) ListExpenses(ctx context.Context, companyID string) ([]models.Expense, error) {
	expenses, err := s.store.ListExpensesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
	return expenses, nil
}

// DeleteExpense hard-deletes one expense record, hidden when owned by
// another company.
func (s *Service) DeleteExpense(ctx context.Context, id, companyID string) error {
	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil || (companyID != "" && expense.CompanyID != companyID) {
		return ErrNotFound
	}
	return s.store.DeleteExpense(ctx, id)
}

// --- folds ---

// BuildDailyMetric folds one day's slice of orders and expenses. Orders are
// attributed to the day they were created; revenue is the sum of their
// totals regardless of what has been collected so far.
func BuildDailyMetric(orders []models.Order, expenses []models.Expense, day time.Time) models.DailyMetric {
	dateKey := day.Format(models.DateKey)
	metric := models.DailyMetric{DateKey: dateKey}

	for _, o := range orders {
		if o.CreatedAt.Format(models.DateKey) != dateKey {
			continue
		}
		switch o.Status {
		case models.StatusNew:
			metric.NewCount++
		case models.StatusWashing:
			metric.WashingCount++
		case models.StatusReady:
			metric.ReadyCount++
		case models.StatusDelivered:
			metric.DeliveredCount++
		}
		metric.Revenue += o.Payment.Total
	}

	for _, e := range expenses {
		if e.Date == dateKey {
			metric.Expense += e.Amount
		}
	}

	metric.Profit = metric.Revenue - metric.Expense
	return metric
}

// Last30Days returns one metric per day for the trailing 30-day window,
// oldest first.
func (s *Service) Last30Days(ctx context.Context, companyID string) ([]models.DailyMetric, error) {
	orders, expenses, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	metrics := make([]models.DailyMetric, 0, 30)
	for i := 29; i >= 0; i-- {
		metrics = append(metrics, BuildDailyMetric(orders, expenses, now.AddDate(0, 0, -i)))
	}
	return metrics, nil
}

// Month returns the monthly report for the given calendar month.
func (s *Service) Month(ctx context.Context, companyID string, year int, month time.Month) (*MonthlyReport, error) {
	orders, expenses, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{}
	day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == month {
		metric := BuildDailyMetric(orders, expenses, day)
		report.Days = append(report.Days, metric)
		report.TotalRevenue += metric.Revenue
		report.TotalExpenses += metric.Expense
		report.TotalProfit += metric.Profit
		day = day.AddDate(0, 0, 1)
	}

	report.Breakdown = models.BreakdownFromRevenue(report.TotalRevenue)
	return report, nil
}

func (s *Service) load(ctx context.Context, companyID string) ([]models.Order, []models.Expense, error) {
	orders, err := s.store.ListOrdersByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpensesByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return orders, expenses, nil
}

// --- nightly snapshots ---

// SnapshotDay persists one DailyReport per company for the given day and
// returns the snapshots for optional export. Per-company failures are
// logged and skipped so one broken tenant does not stall the rest.
func (s *Service) SnapshotDay(ctx context.Context, day time.Time) ([]models.DailyReport, error) {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies for snapshot: %w", err)
	}

	var reports []models.DailyReport
	for _, c := range companies {
		orders, expenses, err := s.load(ctx, c.ID)
		if err != nil {
			s.logger.Error("snapshot load failed", zap.String("company_id", c.ID), zap.Error(err))
			continue
		}

		metric := BuildDailyMetric(orders, expenses, day)
		report := models.DailyReport{
			CompanyID:      c.ID,
			Date:           metric.DateKey,
			NewCount:       metric.NewCount,
			WashingCount:   metric.WashingCount,
			ReadyCount:     metric.ReadyCount,
			DeliveredCount: metric.DeliveredCount,
			Revenue:        metric.Revenue,
			Expenses:       metric.Expense,
			Profit:         metric.Profit,
			CreatedAt:      s.now(),
		}

		if err := s.store.InsertDailyReport(ctx, report); err != nil {
			s.logger.Error("snapshot save failed", zap.String("company_id", c.ID), zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}
