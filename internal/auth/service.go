package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
)

// ErrAccountNotFound is returned by AccountRepository lookups that match no row.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository finds login candidates by email in each account table.
type AccountRepository interface {
	StudentByEmail(ctx context.Context, email string) (*studentDatamodel.Student, error)
	CompanyByEmail(ctx context.Context, email string) (*companyDatamodel.Company, error)
	StudentByID(ctx context.Context, id int64) (*studentDatamodel.Student, error)
	CompanyByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
	AdminByEmail(ctx context.Context, email string) (*adminDatamodel.Admin, error)
}

type Service struct {
	accounts AccountRepository
	tokens   TokenGenerator
	revoked  RevocationStore
	logger   *slog.Logger
}

func NewService(accounts AccountRepository, tokens TokenGenerator, revoked RevocationStore, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		revoked:  revoked,
		logger:   logger,
	}
}

type candidate struct {
	role internal.Role
	id   int64
	hash string
	gate func() error
}

// Login tries the student, company and admin tables in that order. The first account whose
// password matches wins; an approved-only gate then applies to companies and a blacklist gate to students.
// Failures never reveal which stage rejected the credentials.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" || dto.Password == "" {
		return nil, internal.ErrInvalidCredentials
	}

	lookups := []func() (candidate, error){
		func() (candidate, error) {
			row, err := s.accounts.StudentByEmail(ctx, email)
			if err != nil {
				return candidate{}, err
			}
			st := student.FromDataModel(row)
			return candidate{role: internal.RoleStudent, id: row.ID, hash: row.PasswordHash, gate: st.LoginError}, nil
		},
		func() (candidate, error) {
			row, err := s.accounts.CompanyByEmail(ctx, email)
			if err != nil {
				return candidate{}, err
			}
			return candidate{role: internal.RoleCompany, id: row.ID, hash: row.PasswordHash, gate: company.Status(row.ApprovalStatus).LoginError}, nil
		},
		func() (candidate, error) {
			row, err := s.accounts.AdminByEmail(ctx, email)
			if err != nil {
				return candidate{}, err
			}
			return candidate{role: internal.RoleAdmin, id: row.ID, hash: row.PasswordHash, gate: func() error { return nil }}, nil
		},
	}

	for _, lookup := range lookups {
		c, err := lookup()
		if errors.Is(err, ErrAccountNotFound) {
			continue
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "login lookup failed", "error", err)
			return nil, internal.NewInternalError("login failed", err)
		}
		if !CheckPassword(c.hash, dto.Password) {
			continue
		}
		if err := c.gate(); err != nil {
			s.logger.WarnContext(ctx, "login refused", "role", c.role, "account_id", c.id, "reason", err.Error())
			return nil, err
		}
		return s.issue(ctx, c.role, c.id)
	}

	s.logger.WarnContext(ctx, "login failed: invalid credentials")
	return nil, internal.ErrInvalidCredentials
}

func (s *Service) issue(ctx context.Context, role internal.Role, id int64) (*LoginResponse, error) {
	token, claims, err := s.tokens.Generate(id, role)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue session token", "error", err, "role", role, "account_id", id)
		return nil, internal.NewInternalError("failed to issue session", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "role", role, "account_id", id)
	return &LoginResponse{
		Token:     token,
		AccountID: id,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// CurrentIdentity resolves a bearer token to a session, refusing revoked tokens and
// tokens whose account has since lost the standing it logged in with.
func (s *Service) CurrentIdentity(ctx context.Context, token string) (*internal.Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "revocation lookup failed", "error", err)
			return nil, internal.NewInternalError("session lookup failed", err)
		}
		if revoked {
			return nil, internal.ErrInvalidToken
		}
	}

	sess := claims.Session()
	if err := s.standing(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// standing re-applies the login gate of students and companies to an issued token.
func (s *Service) standing(ctx context.Context, sess *internal.Session) error {
	var gate func() error
	switch sess.Role {
	case internal.RoleStudent:
		row, err := s.accounts.StudentByID(ctx, sess.AccountID)
		if err != nil {
			return s.standingLookupError(ctx, sess, err)
		}
		gate = student.FromDataModel(row).LoginError
	case internal.RoleCompany:
		row, err := s.accounts.CompanyByID(ctx, sess.AccountID)
		if err != nil {
			return s.standingLookupError(ctx, sess, err)
		}
		gate = company.Status(row.ApprovalStatus).LoginError
	default:
		return nil
	}

	if err := gate(); err != nil {
		s.logger.WarnContext(ctx, "session refused", "role", sess.Role, "account_id", sess.AccountID, "reason", err.Error())
		return err
	}
	return nil
}

func (s *Service) standingLookupError(ctx context.Context, sess *internal.Session, err error) error {
	if errors.Is(err, ErrAccountNotFound) {
		return internal.ErrInvalidToken
	}
	s.logger.ErrorContext(ctx, "account lookup failed", "error", err, "role", sess.Role, "account_id", sess.AccountID)
	return internal.NewInternalError("session lookup failed", err)
}

// Logout revokes the token until it would have expired. Logging out twice is harmless.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke session", "error", err, "account_id", claims.AccountID)
		return internal.NewInternalError("logout failed", err)
	}

	s.logger.InfoContext(ctx, "logout", "role", claims.Role, "account_id", claims.AccountID)
	return nil
}
