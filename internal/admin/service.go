package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/core/common/validation"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
)

type RepositoryAPI interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, row *adminDatamodel.Admin) error
	GetByID(ctx context.Context, id int64) (*adminDatamodel.Admin, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type StatisticsAPI interface {
	AdminDashboard(ctx context.Context, sess *internal.Session) (*statistics.AdminDashboard, error)
}

type DirectoryAPI interface {
	Search(ctx context.Context, sess *internal.Session, raw string) (*directory.Results, error)
}

type Service struct {
	repo      RepositoryAPI
	hasher    PasswordHasher
	stats     StatisticsAPI
	directory DirectoryAPI
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, stats StatisticsAPI, dir DirectoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		stats:     stats,
		directory: dir,
		logger:    logger,
	}
}

// EnsureDefault creates the privileged account when none exists and reports whether it did.
func (s *Service) EnsureDefault(ctx context.Context, def DefaultAdmin) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	if appErr := validation.Struct(def); appErr != nil {
		return false, appErr
	}
	hash, err := s.hasher.Hash(def.Password)
	if err != nil {
		return false, internal.NewInternalError("failed to hash admin password", err)
	}

	row := ToDataModel(&Admin{
		Username:     def.Username,
		Email:        strings.ToLower(strings.TrimSpace(def.Email)),
		PasswordHash: hash,
		Role:         string(internal.RoleAdmin),
	})
	if err := s.repo.Create(ctx, row); err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "default admin created", "admin_id", row.ID, "username", row.Username)
	return true, nil
}

func (s *Service) Me(ctx context.Context, sess *internal.Session) (*Admin, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// Dashboard returns the live counts together with the student and company search for query.
func (s *Service) Dashboard(ctx context.Context, sess *internal.Session, query string) (*DashboardResponse, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	stats, err := s.stats.AdminDashboard(ctx, sess)
	if err != nil {
		return nil, err
	}
	results, err := s.directory.Search(ctx, sess, query)
	if err != nil {
		var appErr *internal.AppError
		if !errors.As(err, &appErr) {
			s.logger.ErrorContext(ctx, "dashboard search failed", "error", err)
		}
		return nil, err
	}

	return &DashboardResponse{Statistics: stats, Search: results}, nil
}
