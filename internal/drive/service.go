package drive

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/core/common/validation"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, row *driveDatamodel.PlacementDrive) error
	GetByID(ctx context.Context, id int64) (*driveDatamodel.PlacementDrive, error)
	// Transition loads the row under a write lock, applies fn and saves it in one transaction.
	Transition(ctx context.Context, id int64, fn func(row *driveDatamodel.PlacementDrive) error) (*driveDatamodel.PlacementDrive, error)
	// CloseWhere closes, in one transaction, every drive of the company for which match returns true.
	CloseWhere(ctx context.Context, companyID int64, match func(row *driveDatamodel.PlacementDrive) bool) ([]int64, error)
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

// Create posts a new drive for the calling company; it waits in pending until an admin approves it.
func (s *Service) Create(ctx context.Context, sess *internal.Session, dto DriveDTO) (*Drive, error) {
	if err := sess.Require(internal.RoleCompany); err != nil {
		return nil, err
	}
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	row := ToDataModel(NewDrive(sess.AccountID, dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to create drive", "error", err, "company_id", sess.AccountID)
		return nil, err
	}

	s.logger.InfoContext(ctx, "drive created", "drive_id", row.ID, "company_id", sess.AccountID)
	return FromDataModel(row), nil
}

// Get returns a drive to an admin or to the company that owns it.
func (s *Service) Get(ctx context.Context, sess *internal.Session, id int64) (*Drive, error) {
	if err := sess.Require(internal.RoleAdmin, internal.RoleCompany); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(sess, row); err != nil {
		s.logger.WarnContext(ctx, "drive access denied", "drive_id", id, "company_id", sess.AccountID)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Update overwrites the editable fields and resets the drive to pending whatever its state was.
func (s *Service) Update(ctx context.Context, sess *internal.Session, id int64, dto DriveDTO) (*Drive, error) {
	if err := sess.Require(internal.RoleCompany); err != nil {
		return nil, err
	}
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	return s.transition(ctx, sess, id, "update", func(d *Drive) error {
		if err := authorizeOwner(sess, ToDataModel(d)); err != nil {
			return err
		}
		d.Apply(dto)
		return nil
	})
}

func (s *Service) Approve(ctx context.Context, sess *internal.Session, id int64) (*Drive, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, id, "approve", func(d *Drive) error {
		next, err := d.Status.Approve()
		if err != nil {
			return err
		}
		d.Status = next
		return nil
	})
}

func (s *Service) Reject(ctx context.Context, sess *internal.Session, id int64) (*Drive, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, id, "reject", func(d *Drive) error {
		d.Status = d.Status.Reject()
		return nil
	})
}

// Close is available to admins for approved drives and to the owning company for open ones.
func (s *Service) Close(ctx context.Context, sess *internal.Session, id int64) (*Drive, error) {
	if err := sess.Require(internal.RoleAdmin, internal.RoleCompany); err != nil {
		return nil, err
	}
	return s.transition(ctx, sess, id, "close", func(d *Drive) error {
		if err := authorizeOwner(sess, ToDataModel(d)); err != nil {
			return err
		}
		next, err := d.Status.Close(sess.Role)
		if err != nil {
			return err
		}
		d.Status = next
		return nil
	})
}

// CloseExpired closes every open drive of the company whose deadline is before today and
// returns the ids it closed. Dashboards call it before reading any statistics.
func (s *Service) CloseExpired(ctx context.Context, companyID int64, today time.Time) ([]int64, error) {
	closed, err := s.repo.CloseWhere(ctx, companyID, func(row *driveDatamodel.PlacementDrive) bool {
		return FromDataModel(row).Expired(today)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to close expired drives", "error", err, "company_id", companyID)
		return nil, err
	}

	for _, id := range closed {
		s.logger.InfoContext(ctx, "drive closed after deadline", "drive_id", id, "company_id", companyID)
		event := events.NewDriveStatusChanged(id, "expire", string(StatusOpen), string(StatusClosed), companyID, string(internal.RoleCompany))
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish drive event", "error", err, "drive_id", id)
		}
	}
	return closed, nil
}

func authorizeOwner(sess *internal.Session, row *driveDatamodel.PlacementDrive) error {
	if sess.Is(internal.RoleAdmin) {
		return nil
	}
	if !sess.Owns(internal.RoleCompany, row.CompanyID) {
		return ErrNotOwner
	}
	return nil
}

func (s *Service) transition(ctx context.Context, sess *internal.Session, id int64, action string, step func(d *Drive) error) (*Drive, error) {
	var from Status
	row, err := s.repo.Transition(ctx, id, func(row *driveDatamodel.PlacementDrive) error {
		d := FromDataModel(row)
		from = d.Status
		if err := step(d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now()
		*row = *ToDataModel(d)
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "drive transition failed",
			"action", action,
			"drive_id", id,
			"account_id", sess.AccountID,
			"role", sess.Role,
			"error", err)
		return nil, err
	}

	d := FromDataModel(row)
	s.logger.InfoContext(ctx, "drive status changed",
		"action", action,
		"drive_id", id,
		"from", from,
		"to", d.Status,
		"account_id", sess.AccountID,
		"role", sess.Role)

	event := events.NewDriveStatusChanged(id, action, string(from), string(d.Status), sess.AccountID, string(sess.Role))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish drive event", "error", err, "drive_id", id)
	}
	return d, nil
}
