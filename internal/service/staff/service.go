package staff

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
	// ErrNotFound covers missing employees and employees of another company.
	ErrNotFound = errors.New("employee not found")

	// ErrBadDate rejects attendance keys that are not calendar days.
	ErrBadDate = errors.New("attendance date must be YYYY-MM-DD")
)

// Store is the slice of the document store the service needs.
type Store interface {
	InsertEmployee(ctx context.Context, employee models.Employee) error
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployeesByCompany(ctx context.Context, companyID string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch models.EmployeePatch) error
	SetEmployeeAttendance(ctx context.Context, id string, attendance []string) error
	DeleteEmployee(ctx context.Context, id string) error
}

// CreateInput carries the fields of a new staff record.
type CreateInput struct {
	FirstName string
	LastName  string
	Role      string
	Phone     string
	Shift     string
	DailyRate int64
}

// Service manages tenant staff records and their attendance calendar.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	randID func() string
}

// NewService wires a new staff service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		randID: func() string { return fmt.Sprintf("EMP-%04d", 1000+rand.Intn(9000)) },
	}
}

// Create adds a new active employee to the company.
func (s *Service) Create(ctx context.Context, companyID string, in CreateInput) (*models.Employee, error) {
	employee := models.Employee{
		ID:        s.randID(),
		CompanyID: companyID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		Phone:     in.Phone,
		Shift:     in.Shift,
		IsActive:  true,
		HiredAt:   s.now(),
		DailyRate: in.DailyRate,
	}

	if err := s.store.InsertEmployee(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID),
		zap.String("company_id", companyID))
	return &employee, nil
}

// Get fetches one employee, hidden when owned by another company.
func (s *Service) Get(ctx context.Context, id, companyID string) (*models.Employee, error) {
	employee, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil || (companyID != "" && employee.CompanyID != companyID) {
		return nil, ErrNotFound
	}
	return employee, nil
}

// List returns the company's employees, newest hire first.
func (s *Service) List(ctx context.Context, companyID string) ([]models.Employee, error) {
	employees, err := s.store.ListEmployeesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].HiredAt.After(employees[j].HiredAt)
	})
	return employees, nil
}

// Update applies a partial employee update.
func (s *Service) Update(ctx context.Context, id, companyID string, patch models.EmployeePatch) (*models.Employee, error) {
	employee, err := s.Get(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateEmployee(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, employee.ID, companyID)
}

// MarkAttendance adds a calendar day to the employee's attendance set.
// Marking an already-marked day is a no-op.
func (s *Service) MarkAttendance(ctx context.Context, id, companyID, day string) (*models.Employee, error) {
	if _, err := time.Parse(models.DateKey, day); err != nil {
		return nil, ErrBadDate
	}

	employee, err := s.Get(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if employee.HasAttendance(day) {
		return employee, nil
	}

	attendance := append(append([]string{}, employee.Attendance...), day)
	sort.Strings(attendance)
	if err := s.store.SetEmployeeAttendance(ctx, id, attendance); err != nil {
		return nil, err
	}
	employee.Attendance = attendance
	return employee, nil
}

// UnmarkAttendance removes a calendar day from the attendance set.
func (s *Service) UnmarkAttendance(ctx context.Context, id, companyID, day string) (*models.Employee, error) {
	employee, err := s.Get(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	attendance := make([]string, 0, len(employee.Attendance))
	for _, d := range employee.Attendance {
		if d != day {
			attendance = append(attendance, d)
		}
	}
	if err := s.store.SetEmployeeAttendance(ctx, id, attendance); err != nil {
		return nil, err
	}
	employee.Attendance = attendance
	return employee, nil
}

// MonthlyPay recomputes the pay owed for the current month. The figure is
// derived on every call and never persisted.
func (s *Service) MonthlyPay(ctx context.Context, id, companyID string) (int64, error) {
	employee, err := s.Get(ctx, id, companyID)
	if err != nil {
		return 0, err
	}
	return employee.MonthlyPay(s.now()), nil
}

// Delete hard-deletes one employee.
func (s *Service) Delete(ctx context.Context, id, companyID string) error {
	if _, err := s.Get(ctx, id, companyID); err != nil {
		return err
	}
	return s.store.DeleteEmployee(ctx, id)
}
