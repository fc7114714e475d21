package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.MembershipRepository
	repository.MatchingRequestRepository
	repository.VisitPlanRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                        db,
		ProfileRepository:         NewProfileRepository(db),
		MembershipRepository:      NewMembershipRepository(db),
		MatchingRequestRepository: NewMatchingRequestRepository(db),
		VisitPlanRepository:       NewVisitPlanRepository(db),
		NotificationRepository:    NewNotificationRepository(db),
	}
}

// DB exposes the underlying pool for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
