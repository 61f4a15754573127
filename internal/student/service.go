package student

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/core/common/validation"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, row *studentDatamodel.Student) error
	GetByID(ctx context.Context, id int64) (*studentDatamodel.Student, error)
	GetByEmail(ctx context.Context, email string) (*studentDatamodel.Student, error)
	Transition(ctx context.Context, id int64, fn func(row *studentDatamodel.Student) error) (*studentDatamodel.Student, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	hasher    PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterStudentDTO) (*Student, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Name = strings.TrimSpace(dto.Name)
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash student password", "error", err)
		return nil, internal.NewInternalError("failed to register student", err)
	}

	row := ToDataModel(NewStudent(dto, hash))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.WarnContext(ctx, "student registration failed", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "student registered", "student_id", row.ID)
	return FromDataModel(row), nil
}

// Get returns a student profile to an admin or to the student themself.
func (s *Service) Get(ctx context.Context, sess *internal.Session, id int64) (*Student, error) {
	if err := sess.Require(internal.RoleAdmin, internal.RoleStudent); err != nil {
		return nil, err
	}
	if sess.Is(internal.RoleStudent) && !sess.Owns(internal.RoleStudent, id) {
		return nil, internal.ErrForbidden
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Blacklist(ctx context.Context, sess *internal.Session, id int64) (*Student, error) {
	return s.setBlacklist(ctx, sess, id, "blacklist", func(bool) bool { return true })
}

func (s *Service) ToggleBlacklist(ctx context.Context, sess *internal.Session, id int64) (*Student, error) {
	return s.setBlacklist(ctx, sess, id, "toggle_blacklist", func(current bool) bool { return !current })
}

func (s *Service) setBlacklist(ctx context.Context, sess *internal.Session, id int64, action string, next func(bool) bool) (*Student, error) {
	if err := sess.Require(internal.RoleAdmin); err != nil {
		s.logger.WarnContext(ctx, "student blacklist denied", "action", action, "student_id", id)
		return nil, err
	}

	var from bool
	row, err := s.repo.Transition(ctx, id, func(row *studentDatamodel.Student) error {
		from = row.IsBlacklisted
		row.IsBlacklisted = next(from)
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "student blacklist failed", "action", action, "student_id", id, "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "student blacklist changed",
		"action", action,
		"student_id", id,
		"blacklisted", row.IsBlacklisted,
		"admin_id", sess.AccountID)

	event := events.NewStudentBlacklistChanged(id, action, from, row.IsBlacklisted, sess.AccountID, string(sess.Role))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish student event", "error", err, "student_id", id)
	}
	return FromDataModel(row), nil
}
