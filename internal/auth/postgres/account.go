package postgres

import (
	"context"
	"errors"

	"github.com/Dhrumivyas20/placement-portal/internal/auth"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) StudentByEmail(ctx context.Context, email string) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	return &row, r.byEmail(ctx, &row, email)
}

func (r *AccountRepository) CompanyByEmail(ctx context.Context, email string) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	return &row, r.byEmail(ctx, &row, email)
}

func (r *AccountRepository) AdminByEmail(ctx context.Context, email string) (*adminDatamodel.Admin, error) {
	var row adminDatamodel.Admin
	return &row, r.byEmail(ctx, &row, email)
}

func (r *AccountRepository) StudentByID(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	return &row, r.byID(ctx, &row, id)
}

func (r *AccountRepository) CompanyByID(ctx context.Context, id int64) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	return &row, r.byID(ctx, &row, id)
}

func (r *AccountRepository) byID(ctx context.Context, dst interface{}, id int64) error {
	err := r.db.WithContext(ctx).First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.ErrAccountNotFound
	}
	return err
}

func (r *AccountRepository) byEmail(ctx context.Context, dst interface{}, email string) error {
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.ErrAccountNotFound
	}
	return err
}
