package postgres

import (
	"context"
	"errors"

	"github.com/Dhrumivyas20/placement-portal/internal/admin"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&adminDatamodel.Admin{}).Count(&n).Error
	return n, err
}

func (r *AdminRepository) Create(ctx context.Context, row *adminDatamodel.Admin) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*adminDatamodel.Admin, error) {
	var row adminDatamodel.Admin
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admin.ErrAdminNotFound
		}
		return nil, err
	}
	return &row, nil
}
