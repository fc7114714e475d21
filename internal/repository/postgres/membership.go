package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	m := &domain.Membership{}
	var periodEnd sql.NullTime
	query := `SELECT user_id, plan, rank, status, subscription_id, current_period_end, updated_at
	          FROM memberships WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&m.UserID, &m.Plan, &m.Rank, &m.Status, &m.SubscriptionID, &periodEnd, &m.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if periodEnd.Valid {
		m.CurrentPeriodEnd = &periodEnd.Time
	}
	return m, nil
}

func (r *membershipRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.MembershipStatus) error {
	query := `UPDATE memberships SET status = $1, updated_at = $2 WHERE user_id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
