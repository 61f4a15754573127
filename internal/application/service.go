package application

import (
	"context"
	"log/slog"

	"github.com/Dhrumivyas20/placement-portal/internal"
	applicationDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/application"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
)

type RepositoryAPI interface {
	// Create records a student's application to a drive; both must exist.
	Create(ctx context.Context, row *applicationDatamodel.Application) error
	// Transition locks the application, resolves the company owning its drive and applies fn.
	Transition(ctx context.Context, id int64, fn func(row *applicationDatamodel.Application, owner Ownership) error) (*applicationDatamodel.Application, error)
	Ownership(ctx context.Context, id int64) (*Ownership, error)
	DriveOwner(ctx context.Context, driveID int64) (int64, error)
	ListByDrive(ctx context.Context, driveID int64) ([]View, error)
	ListByStudent(ctx context.Context, studentID int64) ([]View, error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// UpdateStatus records the company's decision on an application to one of its drives.
// The status is checked before anything is read.
func (s *Service) UpdateStatus(ctx context.Context, sess *internal.Session, id int64, status string, remarks *string) (*Application, error) {
	if err := sess.Require(internal.RoleCompany); err != nil {
		return nil, err
	}
	next, err := ParseDecision(status)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid application status", "application_id", id, "status", status)
		return nil, err
	}

	var from Status
	row, err := s.repo.Transition(ctx, id, func(row *applicationDatamodel.Application, owner Ownership) error {
		if !sess.Owns(internal.RoleCompany, owner.CompanyID) {
			return ErrNotOwner
		}
		from = Status(row.Status)
		if !from.CanMoveTo(next) {
			return ErrDecisionFinal
		}
		row.Status = string(next)
		if remarks != nil {
			row.Remarks = remarks
		}
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "application status update failed", "application_id", id, "company_id", sess.AccountID, "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "application status changed",
		"application_id", id,
		"from", from,
		"to", next,
		"company_id", sess.AccountID)

	event := events.NewApplicationStatusChanged(id, string(from), string(next), sess.AccountID, string(sess.Role))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish application event", "error", err, "application_id", id)
	}
	return FromDataModel(row), nil
}

// ListByDrive lists the applicants of a drive for its owning company or an admin.
func (s *Service) ListByDrive(ctx context.Context, sess *internal.Session, driveID int64) ([]View, error) {
	if err := sess.Require(internal.RoleCompany, internal.RoleAdmin); err != nil {
		return nil, err
	}

	owner, err := s.repo.DriveOwner(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if sess.Is(internal.RoleCompany) && !sess.Owns(internal.RoleCompany, owner) {
		s.logger.WarnContext(ctx, "applicant list denied", "drive_id", driveID, "company_id", sess.AccountID)
		return nil, ErrNotOwner
	}

	return s.repo.ListByDrive(ctx, driveID)
}

// ListByStudent lists a student's applications for an admin or the student themself.
func (s *Service) ListByStudent(ctx context.Context, sess *internal.Session, studentID int64) ([]View, error) {
	if err := sess.Require(internal.RoleAdmin, internal.RoleStudent); err != nil {
		return nil, err
	}
	if sess.Is(internal.RoleStudent) && !sess.Owns(internal.RoleStudent, studentID) {
		return nil, internal.ErrForbidden
	}

	return s.repo.ListByStudent(ctx, studentID)
}

// ViewResume returns the résumé token of the applicant to the drive's company or an admin.
func (s *Service) ViewResume(ctx context.Context, sess *internal.Session, id int64) (string, error) {
	if err := sess.Require(internal.RoleCompany, internal.RoleAdmin); err != nil {
		return "", err
	}

	owner, err := s.repo.Ownership(ctx, id)
	if err != nil {
		return "", err
	}
	if sess.Is(internal.RoleCompany) && !sess.Owns(internal.RoleCompany, owner.CompanyID) {
		s.logger.WarnContext(ctx, "resume access denied", "application_id", id, "company_id", sess.AccountID)
		return "", ErrNotOwner
	}
	if owner.ResumeFilename == nil || *owner.ResumeFilename == "" {
		return "", ErrResumeNotFound
	}

	s.logger.InfoContext(ctx, "resume viewed", "application_id", id, "student_id", owner.StudentID, "account_id", sess.AccountID, "role", sess.Role)
	return *owner.ResumeFilename, nil
}
