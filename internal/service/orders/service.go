package orders

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
	// ErrNoCompanyContext rejects intake submissions with no resolvable
	// tenant. An order silently attached to the wrong or no company is the
	// one failure that must never happen.
	ErrNoCompanyContext = errors.New("no company context for order")

	// ErrNotFound covers missing orders and orders belonging to another company.
	ErrNotFound = errors.New("order not found")

	// ErrNotEligible is returned when settling the remaining balance is not
	// offered: status must be READY with money still owed.
	ErrNotEligible = errors.New("order not eligible for settlement")

	// ErrInvalidStatus rejects unknown workflow statuses.
	ErrInvalidStatus = errors.New("unknown order status")
)

// Store is the slice of the document store the service needs.
type Store interface {
	InsertOrder(ctx context.Context, order models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByCompany(ctx context.Context, companyID string) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	SetOrderPayment(ctx context.Context, id string, payment models.Payment) error
	SetOrderCustomer(ctx context.Context, id string, customer models.Customer) error
	SetOrderDetails(ctx context.Context, id string, details models.OrderDetails) error
	DeleteOrder(ctx context.Context, id string) error
}

// IntakeInput is what the customer-facing form may supply. Price-like fields
// are absent on purpose: staff set prices later, never the customer.
type IntakeInput struct {
	CompanyID   string
	FirstName   string
	LastName    string
	Phone       string
	Telegram    *string
	ItemCount   int
	ServiceType string
	Notes       *string
	PickupDate  *string
}

// Service owns the order lifecycle: intake, free status transitions,
// payment edits with derived remaining balance, and the one settlement rule.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	randID func() string
}

// NewService wires a new order service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		randID: func() string { return fmt.Sprintf("PC-%04d", 1000+rand.Intn(9000)) },
	}
}

// CreateIntake creates a new order from the customer form. Status is forced
// to NEW and payment to all-zero regardless of input. The company context
// must resolve or the intake fails loudly.
func (s *Service) CreateIntake(ctx context.Context, in IntakeInput) (*models.Order, error) {
	if in.CompanyID == "" {
		return nil, ErrNoCompanyContext
	}

	now := s.now()
	itemCount := in.ItemCount
	if itemCount < 1 {
		itemCount = 1
	}

	order := models.Order{
		ID:        s.randID(),
		CompanyID: in.CompanyID,
		Customer: models.Customer{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
			Telegram:  in.Telegram,
		},
		Details: models.OrderDetails{
			ItemCount:   itemCount,
			ServiceType: in.ServiceType,
			Notes:       in.Notes,
			PickupDate:  in.PickupDate,
			DateIn:      now,
		},
		Payment:   models.Payment{},
		Status:    models.StatusNew,
		CreatedAt: now,
	}

	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("company_id", order.CompanyID))
	return &order, nil
}

// Get fetches one order by id without tenant scoping. Used by the public
// confirmation view, which is keyed by the generated order id.
func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// GetForCompany fetches one order and hides it when it belongs to another
// company.
func (s *Service) GetForCompany(ctx context.Context, id, companyID string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if companyID != "" && order.CompanyID != "" && order.CompanyID != companyID {
		s.logger.Warn("order belongs to another company, hidden",
			zap.String("order_id", id), zap.String("company_id", companyID))
		return nil, ErrNotFound
	}
	return order, nil
}

// List returns the company's orders, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]models.Order, error) {
	orders, err := s.store.ListOrdersByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// SetStatus moves an order to any of the four workflow states. Transitions
// are deliberately unrestricted and touch nothing but the status field.
func (s *Service) SetStatus(ctx context.Context, id, companyID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetForCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.logger.Info("order status changed",
		zap.String("order_id", id), zap.String("status", string(status)))
	return order, nil
}

// SavePayment overwrites total and advance and recomputes the remaining
// balance as max(0, total-advance). Remaining is never settable directly.
func (s *Service) SavePayment(ctx context.Context, id, companyID string, total, advance int64) (*models.Order, error) {
	order, err := s.GetForCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{Total: total, Advance: advance}
	payment.Normalize()

	if err := s.store.SetOrderPayment(ctx, id, payment); err != nil {
		return nil, err
	}
	order.Payment = payment

	return order, nil
}

// SettleRemaining marks the remaining balance as paid. Offered only while
// the order is READY with remaining > 0; the status itself is untouched.
func (s *Service) SettleRemaining(ctx context.Context, id, companyID string) (*models.Order, error) {
	order, err := s.GetForCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	if !order.CanSettleRemaining() {
		return nil, ErrNotEligible
	}

	payment := order.Payment
	payment.Advance = payment.Total
	payment.Remaining = 0

	if err := s.store.SetOrderPayment(ctx, id, payment); err != nil {
		return nil, err
	}
	order.Payment = payment

	s.logger.Info("order balance settled", zap.String("order_id", id))
	return order, nil
}

// UpdateInfo overwrites the customer and/or details sub-records. Each group
// present in the patch replaces the stored group wholesale; concurrent edits
// are last-write-wins at this granularity.
func (s *Service) UpdateInfo(ctx context.Context, id, companyID string, customer *models.Customer, details *models.OrderDetails) (*models.Order, error) {
	order, err := s.GetForCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	if customer != nil {
		if err := s.store.SetOrderCustomer(ctx, id, *customer); err != nil {
			return nil, err
		}
		order.Customer = *customer
	}
	if details != nil {
		if details.DateIn.IsZero() {
			details.DateIn = order.Details.DateIn
		}
		if err := s.store.SetOrderDetails(ctx, id, *details); err != nil {
			return nil, err
		}
		order.Details = *details
	}

	return order, nil
}

// Delete hard-deletes one order.
func (s *Service) Delete(ctx context.Context, id, companyID string) error {
	if _, err := s.GetForCompany(ctx, id, companyID); err != nil {
		return err
	}
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}
