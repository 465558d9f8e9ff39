package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pureclean/platform/internal/domain/models"
)

// Hard-coded platform owner credentials. They correspond to no stored
// record; the pair grants super-admin unconditionally.
const (
	superAdminLogin    = "superadmin"
	superAdminPassword = "superadmin"
)

var (
	// ErrInvalidCredentials is returned for an unknown login and for a wrong
	// password alike, so the response never leaks which field failed.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrSubscriptionInactive is returned when the credentials are right but
	// the company's subscription window is closed or manually disabled.
	ErrSubscriptionInactive = errors.New("subscription not active, contact the platform owner")
)

// CompanyFinder is the slice of the store the gate needs.
type CompanyFinder interface {
	FindCompanyByLogin(ctx context.Context, login string) (*models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
}

// Service implements login and the per-request access gate checks.
type Service struct {
	companies CompanyFinder
	tokens    *TokenManager
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new auth service instance.
func NewService(companies CompanyFinder, tokens *TokenManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		companies: companies,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
	}
}

// Tokens exposes the token manager for the gate middleware.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// Login checks the credential pair and returns a session plus its signed
// token. The superadmin pair bypasses the store entirely; everything else is
// an exact plaintext match against company records.
func (s *Service) Login(ctx context.Context, login, password string) (Session, string, error) {
	if login == superAdminLogin && password == superAdminPassword {
		session := Session{SuperAdmin: true}
		token, err := s.tokens.Mint(session, s.now())
		if err != nil {
			return Session{}, "", err
		}
		s.logger.Info("super-admin login")
		return session, token, nil
	}

	company, err := s.companies.FindCompanyByLogin(ctx, login)
	if err != nil {
		return Session{}, "", fmt.Errorf("lookup login: %w", err)
	}
	if company == nil || company.Password != password {
		return Session{}, "", ErrInvalidCredentials
	}

	if !company.ActiveAt(s.now()) {
		return Session{}, "", ErrSubscriptionInactive
	}

	session := Session{Admin: true, CompanyID: company.ID, CompanyName: company.Name}
	token, err := s.tokens.Mint(session, s.now())
	if err != nil {
		return Session{}, "", err
	}

	s.logger.Info("admin login", zap.String("company_id", company.ID))
	return session, token, nil
}

// CheckSubscription decides whether an admin session's company content may
// render. Super-admins are never gated. For regular admins, a missing
// remembered company, a missing record, a store error or an inactive
// subscription all block alike.
func (s *Service) CheckSubscription(ctx context.Context, session Session) bool {
	if session.SuperAdmin {
		return true
	}
	if session.CompanyID == "" {
		return false
	}

	company, err := s.companies.GetCompany(ctx, session.CompanyID)
	if err != nil {
		s.logger.Warn("subscription check failed", zap.String("company_id", session.CompanyID), zap.Error(err))
		return false
	}
	if company == nil {
		return false
	}
	return company.ActiveAt(s.now())
}
