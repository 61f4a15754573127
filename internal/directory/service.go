package directory

import (
	"context"
	"log/slog"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
)

type RepositoryAPI interface {
	// SearchStudents matches name, email, phone or department, or the exact id. Ordered by id.
	SearchStudents(ctx context.Context, q Query) ([]studentDatamodel.Student, error)
	// SearchCompanies matches name, email or industry. Ordered by id.
	SearchCompanies(ctx context.Context, q Query) ([]companyDatamodel.Company, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) SearchStudents(ctx context.Context, sess *internal.Session, raw string) ([]*student.Student, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := s.repo.SearchStudents(ctx, ParseQuery(raw))
	if err != nil {
		s.logger.ErrorContext(ctx, "student search failed", "error", err)
		return nil, err
	}

	out := make([]*student.Student, 0, len(rows))
	for i := range rows {
		out = append(out, student.FromDataModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) SearchCompanies(ctx context.Context, sess *internal.Session, raw string) ([]company.CompanyResponse, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := s.repo.SearchCompanies(ctx, ParseQuery(raw))
	if err != nil {
		s.logger.ErrorContext(ctx, "company search failed", "error", err)
		return nil, err
	}

	out := make([]company.CompanyResponse, 0, len(rows))
	for i := range rows {
		out = append(out, company.FromDataModel(&rows[i]).ToResponse())
	}
	return out, nil
}

// Search runs both searches with the same term.
func (s *Service) Search(ctx context.Context, sess *internal.Session, raw string) (*Results, error) {
	students, err := s.SearchStudents(ctx, sess, raw)
	if err != nil {
		return nil, err
	}
	companies, err := s.SearchCompanies(ctx, sess, raw)
	if err != nil {
		return nil, err
	}
	return &Results{Query: ParseQuery(raw).Term, Students: students, Companies: companies}, nil
}
