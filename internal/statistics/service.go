package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/core/common/validation"
	statisticsDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/statistics"
)

type RepositoryAPI interface {
	AdminCounts(ctx context.Context) (*AdminCounts, error)
	CompanyCounts(ctx context.Context, companyID int64) (*CompanyCounts, error)
	// OpenDriveStats lists open drives, all of them when companyID is zero. Ordered by drive id.
	OpenDriveStats(ctx context.Context, companyID int64) ([]DriveStats, error)
	StudentStatusCounts(ctx context.Context, studentID int64) (map[string]int64, error)
	OpenDriveCount(ctx context.Context) (int64, error)
	SnapshotInputs(ctx context.Context, from, to time.Time) (*SnapshotInputs, error)
	// CreateSnapshot fails with ErrSnapshotExists when the year is already recorded.
	CreateSnapshot(ctx context.Context, row *statisticsDatamodel.PlacementStatistics) error
	ListSnapshots(ctx context.Context) ([]statisticsDatamodel.PlacementStatistics, error)
}

// DriveCloser closes a company's drives whose deadline has passed.
type DriveCloser interface {
	CloseExpired(ctx context.Context, companyID int64, today time.Time) ([]int64, error)
}

type Service struct {
	repo   RepositoryAPI
	drives DriveCloser
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, drives DriveCloser, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		drives: drives,
		logger: logger,
		now:    time.Now,
	}
}

// AdminDashboard recomputes the global counts from live data.
func (s *Service) AdminDashboard(ctx context.Context, sess *internal.Session) (*AdminDashboard, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	counts, err := s.repo.AdminCounts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "admin counts failed", "error", err)
		return nil, err
	}
	drives, err := s.repo.OpenDriveStats(ctx, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "open drive stats failed", "error", err)
		return nil, err
	}

	shortlisted, selected := totals(drives)
	return &AdminDashboard{
		AdminCounts:      *counts,
		Drives:           nonNil(drives),
		TotalShortlisted: shortlisted,
		TotalSelected:    selected,
	}, nil
}

// CompanyDashboard closes the company's expired drives first so the counts never include them as open.
func (s *Service) CompanyDashboard(ctx context.Context, sess *internal.Session, today time.Time) (*CompanyDashboard, error) {
	if err := sess.Require(internal.RoleCompany); err != nil {
		return nil, err
	}
	if today.IsZero() {
		today = s.now()
	}

	closed, err := s.drives.CloseExpired(ctx, sess.AccountID, internal.Today(today))
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CompanyCounts(ctx, sess.AccountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "company counts failed", "error", err, "company_id", sess.AccountID)
		return nil, err
	}
	drives, err := s.repo.OpenDriveStats(ctx, sess.AccountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "open drive stats failed", "error", err, "company_id", sess.AccountID)
		return nil, err
	}

	shortlisted, selected := totals(drives)
	if closed == nil {
		closed = []int64{}
	}
	return &CompanyDashboard{
		CompanyCounts:    *counts,
		Drives:           nonNil(drives),
		TotalShortlisted: shortlisted,
		TotalSelected:    selected,
		ClosedExpired:    closed,
	}, nil
}

func (s *Service) StudentDashboard(ctx context.Context, sess *internal.Session) (*StudentDashboard, error) {
	if err := sess.Require(internal.RoleStudent); err != nil {
		return nil, err
	}

	byStatus, err := s.repo.StudentStatusCounts(ctx, sess.AccountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "student counts failed", "error", err, "student_id", sess.AccountID)
		return nil, err
	}
	open, err := s.repo.OpenDriveCount(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &StudentDashboard{TotalApplications: total, ByStatus: byStatus, OpenDrives: open}, nil
}

// Snapshot records the placement figures of a year. Each year can be recorded once.
func (s *Service) Snapshot(ctx context.Context, sess *internal.Session, dto SnapshotDTO) (*Snapshot, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	from, to := YearRange(dto.Year)
	inputs, err := s.repo.SnapshotInputs(ctx, from, to)
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshot inputs failed", "error", err, "year", dto.Year)
		return nil, err
	}

	snap := &Snapshot{
		Year:                 dto.Year,
		TotalStudents:        int(inputs.TotalStudents),
		PlacedStudents:       int(inputs.PlacedStudents),
		CompanyParticipation: int(inputs.CompanyParticipation),
		AverageSalary:        dto.AverageSalary,
		HighestSalary:        dto.HighestSalary,
		CreatedAt:            s.now(),
	}
	row := ToDataModel(snap)
	if err := s.repo.CreateSnapshot(ctx, row); err != nil {
		s.logger.WarnContext(ctx, "snapshot not recorded", "error", err, "year", dto.Year)
		return nil, err
	}

	s.logger.InfoContext(ctx, "placement statistics recorded", "year", dto.Year, "placed_students", snap.PlacedStudents)
	return FromDataModel(row), nil
}

func (s *Service) ListSnapshots(ctx context.Context, sess *internal.Session) ([]*Snapshot, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Snapshot, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

func nonNil(drives []DriveStats) []DriveStats {
	if drives == nil {
		return []DriveStats{}
	}
	return drives
}
