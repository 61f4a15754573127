package postgres

import (
	"context"
	"time"

	sessionDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository is the database-backed revocation list used when redis is disabled.
type SessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	row := &sessionDatamodel.RevokedSession{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		RevokedAt: r.now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(row).Error
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&sessionDatamodel.RevokedSession{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	return count > 0, err
}

// PurgeExpired drops revocations whose tokens have expired on their own.
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&sessionDatamodel.RevokedSession{})
	return res.RowsAffected, res.Error
}
