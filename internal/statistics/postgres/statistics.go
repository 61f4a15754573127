package postgres

import (
	"context"
	"fmt"
	"time"

	statisticsDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/statistics"
	"github.com/Dhrumivyas20/placement-portal/internal/statistics"
	"github.com/jmoiron/sqlx"
)

// StatisticsRepository runs the aggregate queries with sqlx. Queries are written with ? and rebound per driver.
type StatisticsRepository struct {
	db *sqlx.DB
}

func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

const adminCountsQuery = `
SELECT
	(SELECT COUNT(*) FROM students) AS total_students,
	(SELECT COUNT(*) FROM companies) AS total_companies,
	(SELECT COUNT(*) FROM companies WHERE approval_status = 'approved') AS approved_companies,
	(SELECT COUNT(*) FROM applications) AS total_applications,
	(SELECT COUNT(*) FROM placement_drives) AS total_drives`

func (r *StatisticsRepository) AdminCounts(ctx context.Context) (*statistics.AdminCounts, error) {
	var counts statistics.AdminCounts
	if err := r.db.GetContext(ctx, &counts, adminCountsQuery); err != nil {
		return nil, fmt.Errorf("admin counts: %w", err)
	}
	return &counts, nil
}

const companyCountsQuery = `
SELECT
	(SELECT COUNT(*) FROM placement_drives WHERE company_id = ?) AS total_drives,
	(SELECT COUNT(*) FROM placement_drives WHERE company_id = ? AND status = 'open') AS approved_drives,
	(SELECT COUNT(*) FROM applications a JOIN placement_drives d ON d.id = a.drive_id WHERE d.company_id = ?) AS total_applications`

func (r *StatisticsRepository) CompanyCounts(ctx context.Context, companyID int64) (*statistics.CompanyCounts, error) {
	var counts statistics.CompanyCounts
	if err := r.db.GetContext(ctx, &counts, r.db.Rebind(companyCountsQuery), companyID, companyID, companyID); err != nil {
		return nil, fmt.Errorf("company counts: %w", err)
	}
	return &counts, nil
}

const openDriveStatsQuery = `
SELECT
	d.id AS drive_id,
	d.job_title,
	d.company_id,
	c.name AS company_name,
	COUNT(a.id) AS applications,
	COALESCE(SUM(CASE WHEN a.status = 'Shortlisted' THEN 1 ELSE 0 END), 0) AS shortlisted,
	COALESCE(SUM(CASE WHEN a.status = 'Selected' THEN 1 ELSE 0 END), 0) AS selected
FROM placement_drives d
JOIN companies c ON c.id = d.company_id
LEFT JOIN applications a ON a.drive_id = d.id
WHERE d.status = 'open'`

func (r *StatisticsRepository) OpenDriveStats(ctx context.Context, companyID int64) ([]statistics.DriveStats, error) {
	query := openDriveStatsQuery
	var args []interface{}
	if companyID != 0 {
		query += "\n\tAND d.company_id = ?"
		args = append(args, companyID)
	}
	query += "\nGROUP BY d.id, d.job_title, d.company_id, c.name\nORDER BY d.id ASC"

	var stats []statistics.DriveStats
	if err := r.db.SelectContext(ctx, &stats, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("open drive stats: %w", err)
	}
	return stats, nil
}

func (r *StatisticsRepository) StudentStatusCounts(ctx context.Context, studentID int64) (map[string]int64, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}
	query := r.db.Rebind(`SELECT status, COUNT(*) AS count FROM applications WHERE student_id = ? GROUP BY status`)
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("student status counts: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *StatisticsRepository) OpenDriveCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM placement_drives WHERE status = 'open'`); err != nil {
		return 0, fmt.Errorf("open drive count: %w", err)
	}
	return n, nil
}

const snapshotInputsQuery = `
SELECT
	(SELECT COUNT(*) FROM students) AS total_students,
	(SELECT COUNT(DISTINCT a.student_id) FROM applications a
		WHERE a.status = 'Selected' AND a.applied_at >= ? AND a.applied_at < ?) AS placed_students,
	(SELECT COUNT(DISTINCT d.company_id) FROM placement_drives d
		WHERE d.date_posted >= ? AND d.date_posted < ?) AS company_participation`

func (r *StatisticsRepository) SnapshotInputs(ctx context.Context, from, to time.Time) (*statistics.SnapshotInputs, error) {
	var in statistics.SnapshotInputs
	if err := r.db.GetContext(ctx, &in, r.db.Rebind(snapshotInputsQuery), from, to, from, to); err != nil {
		return nil, fmt.Errorf("snapshot inputs: %w", err)
	}
	return &in, nil
}

// CreateSnapshot checks and inserts in one transaction; the unique index on year backs it up.
func (r *StatisticsRepository) CreateSnapshot(ctx context.Context, row *statisticsDatamodel.PlacementStatistics) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing int64
	if err = tx.GetContext(ctx, &existing, tx.Rebind(`SELECT COUNT(*) FROM placement_statistics WHERE year = ?`), row.Year); err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if existing > 0 {
		return statistics.ErrSnapshotExists
	}

	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	insert := tx.Rebind(`INSERT INTO placement_statistics
	(year, total_students, placed_students, company_participation, average_salary, highest_salary, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	if err = tx.QueryRowxContext(ctx, insert,
		row.Year, row.TotalStudents, row.PlacedStudents, row.CompanyParticipation,
		row.AverageSalary, row.HighestSalary, row.CreatedAt,
	).Scan(&row.ID); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (r *StatisticsRepository) ListSnapshots(ctx context.Context) ([]statisticsDatamodel.PlacementStatistics, error) {
	var rows []statisticsDatamodel.PlacementStatistics
	err := r.db.SelectContext(ctx, &rows, `SELECT id, year, total_students, placed_students, company_participation,
	average_salary, highest_salary, created_at FROM placement_statistics ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return rows, nil
}
