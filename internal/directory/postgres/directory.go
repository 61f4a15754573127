package postgres

import (
	"context"

	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	"gorm.io/gorm"
)

type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

const like = `LIKE ? ESCAPE '\'`

func (r *DirectoryRepository) SearchStudents(ctx context.Context, q directory.Query) ([]studentDatamodel.Student, error) {
	query := r.db.WithContext(ctx).Model(&studentDatamodel.Student{})
	if !q.Blank() {
		p := q.Pattern()
		cond := r.db.Where("LOWER(name) "+like, p).
			Or("LOWER(email) "+like, p).
			Or("LOWER(COALESCE(phone, '')) "+like, p).
			Or("LOWER(department) "+like, p)
		if q.ID != nil {
			cond = cond.Or("id = ?", *q.ID)
		}
		query = query.Where(cond)
	}

	var rows []studentDatamodel.Student
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DirectoryRepository) SearchCompanies(ctx context.Context, q directory.Query) ([]companyDatamodel.Company, error) {
	query := r.db.WithContext(ctx).Model(&companyDatamodel.Company{})
	if !q.Blank() {
		p := q.Pattern()
		query = query.Where(
			r.db.Where("LOWER(name) "+like, p).
				Or("LOWER(email) "+like, p).
				Or("LOWER(industry) "+like, p),
		)
	}

	var rows []companyDatamodel.Company
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
