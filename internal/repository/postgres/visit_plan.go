package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
)

type visitPlanRepository struct {
	db *sql.DB
}

func NewVisitPlanRepository(db *sql.DB) repository.VisitPlanRepository {
	return &visitPlanRepository{db: db}
}

// visit_date is read back as text so it keeps the YYYY-MM-DD form.
const visitPlanColumns = `v.id, v.user_id, v.visit_date::text, v.start_time, v.end_time, v.visibility, v.message,
	v.is_cancelled, v.created_at, v.updated_at`

func scanVisitPlan(row rowScanner, withOwner bool) (*domain.VisitPlan, error) {
	p := &domain.VisitPlan{}
	dest := []any{&p.ID, &p.UserID, &p.VisitDate, &p.StartTime, &p.EndTime, &p.Visibility, &p.Message,
		&p.IsCancelled, &p.CreatedAt, &p.UpdatedAt}
	var owner domain.MemberSummary
	if withOwner {
		dest = append(dest, &owner.ID, &owner.DisplayName, &owner.AvatarURL, &owner.Occupation)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withOwner {
		p.Owner = &owner
	}
	return p, nil
}

func (r *visitPlanRepository) Create(ctx context.Context, p *domain.VisitPlan) error {
	query := `INSERT INTO visit_plans (user_id, visit_date, start_time, end_time, visibility, message, is_cancelled, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $7) RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	logger.DatabaseCall("INSERT", "visit_plans", "userID", p.UserID, "visitDate", p.VisitDate)
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.VisitDate, p.StartTime, p.EndTime, p.Visibility, p.Message, now).Scan(&p.ID)
	logger.DatabaseResult("INSERT", 1, err, "planID", p.ID)
	return err
}

func (r *visitPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error) {
	query := `SELECT ` + visitPlanColumns + ` FROM visit_plans v WHERE v.id = $1`
	p, err := scanVisitPlan(r.db.QueryRowContext(ctx, query, id), false)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *visitPlanRepository) Update(ctx context.Context, p *domain.VisitPlan) error {
	query := `UPDATE visit_plans SET visit_date = $1, start_time = $2, end_time = $3, visibility = $4, message = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8 AND NOT is_cancelled`
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, p.VisitDate, p.StartTime, p.EndTime, p.Visibility, p.Message, p.UpdatedAt, p.ID, p.UserID)
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

func (r *visitPlanRepository) Cancel(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `UPDATE visit_plans SET is_cancelled = TRUE, updated_at = $1 WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id, ownerID)
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

func (r *visitPlanRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, dr domain.DateRange) ([]domain.VisitPlan, error) {
	query := `SELECT ` + visitPlanColumns + ` FROM visit_plans v
	          WHERE v.user_id = $1 AND NOT v.is_cancelled AND v.visit_date BETWEEN $2 AND $3
	          ORDER BY v.visit_date, v.start_time`
	rows, err := r.db.QueryContext(ctx, query, ownerID, dr.From, dr.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.VisitPlan
	for rows.Next() {
		p, err := scanVisitPlan(rows, false)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (r *visitPlanRepository) ListVisible(ctx context.Context, dr domain.DateRange, visibilities []domain.Visibility) ([]domain.VisitPlan, error) {
	vis := make([]string, len(visibilities))
	for i, v := range visibilities {
		vis[i] = string(v)
	}

	query := `SELECT ` + visitPlanColumns + `, p.id, p.display_name, p.avatar_url, p.occupation
	          FROM visit_plans v JOIN profiles p ON p.id = v.user_id
	          WHERE NOT v.is_cancelled AND v.visit_date BETWEEN $1 AND $2 AND v.visibility = ANY($3)
	          ORDER BY v.visit_date, v.start_time`
	logger.DatabaseCall("SELECT", "visit_plans", "from", dr.From, "to", dr.To, "visibilities", vis)
	rows, err := r.db.QueryContext(ctx, query, dr.From, dr.To, pq.Array(vis))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var plans []domain.VisitPlan
	for rows.Next() {
		p, err := scanVisitPlan(rows, true)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(plans)), nil)
	return plans, nil
}
