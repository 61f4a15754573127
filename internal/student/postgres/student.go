package postgres

import (
	"context"
	"errors"

	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, row *studentDatamodel.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&studentDatamodel.Student{}).Where("email = ?", row.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return student.ErrEmailTaken
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return student.ErrEmailTaken
			}
			return err
		}
		return nil
	})
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, student.ErrStudentNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) Transition(ctx context.Context, id int64, fn func(row *studentDatamodel.Student) error) (*studentDatamodel.Student, error) {
	var row studentDatamodel.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return student.ErrStudentNotFound
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
