package company

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/core/common/validation"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, row *companyDatamodel.Company) error
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
	GetByEmail(ctx context.Context, email string) (*companyDatamodel.Company, error)
	// Transition loads the row under a write lock, applies fn and saves it in one transaction.
	// When fn fails nothing is written.
	Transition(ctx context.Context, id int64, fn func(row *companyDatamodel.Company) error) (*companyDatamodel.Company, error)
	ListDrives(ctx context.Context, companyID int64) ([]*driveDatamodel.PlacementDrive, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	hasher    PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
	}
}

// Register creates a pending company account.
func (s *Service) Register(ctx context.Context, dto RegisterCompanyDTO) (*Company, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Name = strings.TrimSpace(dto.Name)
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash company password", "error", err)
		return nil, internal.NewInternalError("failed to register company", err)
	}

	row := ToDataModel(NewCompany(dto, hash))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.WarnContext(ctx, "company registration failed", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "company registered", "company_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Get(ctx context.Context, sess *internal.Session, id int64) (*DetailResponse, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	drives, err := s.repo.ListDrives(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list company drives", "error", err, "company_id", id)
		return nil, err
	}

	resp := &DetailResponse{
		Company: FromDataModel(row).ToResponse(),
		Drives:  make([]DriveSummary, 0, len(drives)),
	}
	for _, d := range drives {
		resp.Drives = append(resp.Drives, DriveSummary{
			ID:                  d.ID,
			JobTitle:            d.JobTitle,
			Status:              d.Status,
			ApplicationDeadline: d.ApplicationDeadline,
		})
	}
	return resp, nil
}

func (s *Service) Approve(ctx context.Context, sess *internal.Session, id int64) (*Company, error) {
	return s.transition(ctx, sess, id, "approve", Status.Approve)
}

func (s *Service) Reject(ctx context.Context, sess *internal.Session, id int64) (*Company, error) {
	return s.transition(ctx, sess, id, "reject", Status.Reject)
}

func (s *Service) Blacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error) {
	return s.transition(ctx, sess, id, "blacklist", infallible(Status.Blacklist))
}

func (s *Service) Unblacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error) {
	return s.transition(ctx, sess, id, "unblacklist", infallible(Status.Unblacklist))
}

func (s *Service) ToggleBlacklist(ctx context.Context, sess *internal.Session, id int64) (*Company, error) {
	return s.transition(ctx, sess, id, "toggle_blacklist", infallible(Status.ToggleBlacklist))
}

func infallible(step func(Status) Status) func(Status) (Status, error) {
	return func(s Status) (Status, error) {
		return step(s), nil
	}
}

func (s *Service) transition(ctx context.Context, sess *internal.Session, id int64, action string, step func(Status) (Status, error)) (*Company, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		s.logger.WarnContext(ctx, "company transition denied", "action", action, "company_id", id)
		return nil, err
	}

	var from Status
	row, err := s.repo.Transition(ctx, id, func(row *companyDatamodel.Company) error {
		from = Status(row.ApprovalStatus)
		next, err := step(from)
		if err != nil {
			return err
		}
		row.ApprovalStatus = string(next)
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "company transition failed", "action", action, "company_id", id, "error", err)
		return nil, err
	}

	c := FromDataModel(row)
	s.logger.InfoContext(ctx, "company status changed",
		"action", action,
		"company_id", id,
		"from", from,
		"to", c.Status,
		"admin_id", sess.AccountID)

	event := events.NewCompanyStatusChanged(id, action, string(from), string(c.Status), sess.AccountID, string(sess.Role))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish company event", "error", err, "company_id", id)
	}
	return c, nil
}
