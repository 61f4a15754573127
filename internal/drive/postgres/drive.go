package postgres

import (
	"context"
	"errors"
	"time"

	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DriveRepository struct {
	db *gorm.DB
}

func NewDriveRepository(db *gorm.DB) *DriveRepository {
	return &DriveRepository{db: db}
}

func (r *DriveRepository) Create(ctx context.Context, row *driveDatamodel.PlacementDrive) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*driveDatamodel.PlacementDrive, error) {
	var row driveDatamodel.PlacementDrive
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, drive.ErrDriveNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *DriveRepository) Transition(ctx context.Context, id int64, fn func(row *driveDatamodel.PlacementDrive) error) (*driveDatamodel.PlacementDrive, error) {
	var row driveDatamodel.PlacementDrive
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return drive.ErrDriveNotFound
			}
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CloseWhere locks the company's open drives and closes the ones match selects.
func (r *DriveRepository) CloseWhere(ctx context.Context, companyID int64, match func(row *driveDatamodel.PlacementDrive) bool) ([]int64, error) {
	var closed []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open []*driveDatamodel.PlacementDrive
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND status = ?", companyID, string(drive.StatusOpen)).
			Order("id ASC").
			Find(&open).Error
		if err != nil {
			return err
		}

		for _, row := range open {
			if !match(row) {
				continue
			}
			err := tx.Model(&driveDatamodel.PlacementDrive{}).
				Where("id = ?", row.ID).
				Updates(map[string]interface{}{
					"status":     string(drive.StatusClosed),
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return err
			}
			closed = append(closed, row.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
