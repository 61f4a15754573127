package postgres

import (
	"context"
	"errors"

	"github.com/Dhrumivyas20/placement-portal/internal/company"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	driveDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/drive"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts the company after checking email and name inside the same transaction.
func (r *CompanyRepository) Create(ctx context.Context, row *companyDatamodel.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&companyDatamodel.Company{}).Where("email = ?", row.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return company.ErrEmailTaken
		}
		if err := tx.Model(&companyDatamodel.Company{}).Where("name = ?", row.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return company.ErrNameTaken
		}

		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return company.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *CompanyRepository) Transition(ctx context.Context, id int64, fn func(row *companyDatamodel.Company) error) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return company.ErrCompanyNotFound
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

func (r *CompanyRepository) ListDrives(ctx context.Context, companyID int64) ([]*driveDatamodel.PlacementDrive, error) {
	var drives []*driveDatamodel.PlacementDrive
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("id ASC").
		Find(&drives).Error
	return drives, err
}
