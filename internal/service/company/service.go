package company

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
)

// ErrNotFound is returned when the requested company does not exist.
var ErrNotFound = errors.New("company not found")

// Store is the slice of the document store the service needs.
type Store interface {
	InsertCompany(ctx context.Context, company models.Company) error
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, id string, patch models.CompanyPatch) error
	DeleteCompany(ctx context.Context, id string) error
}

// CreateInput carries the fields the super-admin fills in when provisioning
// a new laundry business.
type CreateInput struct {
	Name      string
	Login     string
	Password  string
	IsEnabled bool
	ValidFrom time.Time
	ValidTo   time.Time
}

// Service provisions and manages tenant companies. Super-admin only.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	randID func() string
}

// NewService wires a new company service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		randID: func() string { return fmt.Sprintf("COMP-%06d", 100000+rand.Intn(900000)) },
	}
}

// Create provisions a new company with a generated id.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Company, error) {
	company := models.Company{
		ID:        s.randID(),
		Name:      in.Name,
		Login:     in.Login,
		Password:  in.Password,
		IsEnabled: in.IsEnabled,
		ValidFrom: in.ValidFrom,
		ValidTo:   in.ValidTo,
		CreatedAt: s.now(),
	}

	if err := s.store.InsertCompany(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info("company created", zap.String("company_id", company.ID), zap.String("login", company.Login))
	return &company, nil
}

// Get fetches one company.
func (s *Service) Get(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// List returns every company.
func (s *Service) List(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

// Update applies a partial company update.
func (s *Service) Update(ctx context.Context, id string, patch models.CompanyPatch) error {
	return s.store.UpdateCompany(ctx, id, patch)
}

// ToggleEnabled flips the manual subscription kill switch.
func (s *Service) ToggleEnabled(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !company.IsEnabled
	if err := s.store.UpdateCompany(ctx, id, models.CompanyPatch{IsEnabled: &next}); err != nil {
		return nil, err
	}
	company.IsEnabled = next

	s.logger.Info("company toggled", zap.String("company_id", id), zap.Bool("enabled", next))
	return company, nil
}

// Delete removes the company document only. Orders, employees and expenses
// that reference it are deliberately left behind; they stay fetchable by id
// but disappear from tenant-scoped listings.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCompany(ctx, id); err != nil {
		return err
	}
	s.logger.Info("company deleted", zap.String("company_id", id))
	return nil
}
