package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
)

type matchingRequestRepository struct {
	db *sql.DB
}

func NewMatchingRequestRepository(db *sql.DB) repository.MatchingRequestRepository {
	return &matchingRequestRepository{db: db}
}

const matchingColumns = `m.id, m.from_user_id, m.to_user_id, m.status, m.proposed_dates, m.selected_date,
	m.introduction, m.message, m.topic, m.created_at, m.responded_at`

const counterpartColumns = `, p.id, p.display_name, p.avatar_url, p.occupation`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatchingRequest(row rowScanner, withCounterpart bool) (*domain.MatchingRequest, error) {
	req := &domain.MatchingRequest{}
	var proposed, selected []byte
	var respondedAt sql.NullTime
	dest := []any{&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &proposed, &selected,
		&req.Introduction, &req.Message, &req.Topic, &req.CreatedAt, &respondedAt}

	var cp domain.MemberSummary
	if withCounterpart {
		dest = append(dest, &cp.ID, &cp.DisplayName, &cp.AvatarURL, &cp.Occupation)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(proposed, &req.ProposedDates); err != nil {
		return nil, fmt.Errorf("decode proposed_dates: %w", err)
	}
	if len(selected) > 0 {
		var sel domain.ProposedDate
		if err := json.Unmarshal(selected, &sel); err != nil {
			return nil, fmt.Errorf("decode selected_date: %w", err)
		}
		req.SelectedDate = &sel
	}
	if respondedAt.Valid {
		req.RespondedAt = &respondedAt.Time
	}
	if withCounterpart {
		req.Counterpart = &cp
	}
	return req, nil
}

func (r *matchingRequestRepository) Create(ctx context.Context, req *domain.MatchingRequest) error {
	logger.EnterMethod("matchingRequestRepository.Create", "fromUserID", req.FromUserID, "toUserID", req.ToUserID)

	proposed, err := json.Marshal(req.ProposedDates)
	if err != nil {
		logger.ExitMethodWithError("matchingRequestRepository.Create", err, "reason", "failed to marshal proposed dates")
		return err
	}

	query := `INSERT INTO matching_requests (from_user_id, to_user_id, status, proposed_dates, last_proposed_date, introduction, message, topic, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	req.CreatedAt = time.Now().UTC()
	logger.DatabaseCall("INSERT", "matching_requests", "fromUserID", req.FromUserID)
	err = r.db.QueryRowContext(ctx, query, req.FromUserID, req.ToUserID, req.Status, string(proposed), req.LastProposedDate(),
		req.Introduction, req.Message, req.Topic, req.CreatedAt).Scan(&req.ID)
	logger.DatabaseResult("INSERT", 1, err, "requestID", req.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRequest
		}
		logger.ExitMethodWithError("matchingRequestRepository.Create", err)
		return err
	}
	logger.ExitMethod("matchingRequestRepository.Create", "requestID", req.ID)
	return nil
}

func (r *matchingRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchingRequest, error) {
	query := `SELECT ` + matchingColumns + ` FROM matching_requests m WHERE m.id = $1`
	req, err := scanMatchingRequest(r.db.QueryRowContext(ctx, query, id), false)
	if err != nil {
		return nil, notFound(err)
	}
	return req, nil
}

func (r *matchingRequestRepository) ListSent(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error) {
	return r.list(ctx, "from_user_id", "to_user_id", userID, opts)
}

func (r *matchingRequestRepository) ListReceived(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error) {
	return r.list(ctx, "to_user_id", "from_user_id", userID, opts)
}

// list filters on ownerCol and, when requested, joins the profile referenced
// by counterpartCol.
func (r *matchingRequestRepository) list(ctx context.Context, ownerCol, counterpartCol string, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error) {
	query := `SELECT ` + matchingColumns
	if opts.WithCounterpart {
		query += counterpartColumns + ` FROM matching_requests m JOIN profiles p ON p.id = m.` + counterpartCol
	} else {
		query += ` FROM matching_requests m`
	}
	query += ` WHERE m.` + ownerCol + ` = $1 ORDER BY m.created_at DESC`

	logger.DatabaseCall("SELECT", "matching_requests", "owner", ownerCol, "userID", userID)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.MatchingRequest
	for rows.Next() {
		req, err := scanMatchingRequest(rows, opts.WithCounterpart)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(reqs)), nil)
	return reqs, nil
}

func (r *matchingRequestRepository) Resolve(ctx context.Context, p repository.ResolveParams) (*domain.MatchingRequest, error) {
	logger.EnterMethod("matchingRequestRepository.Resolve", "requestID", p.ID, "status", p.Status)

	var selected any
	if p.SelectedDate != nil {
		b, err := json.Marshal(p.SelectedDate)
		if err != nil {
			return nil, err
		}
		selected = string(b)
	}

	actorCol := "to_user_id"
	if p.ActorIsFrom {
		actorCol = "from_user_id"
	}

	// The pending guard makes concurrent resolutions of one request mutually exclusive.
	query := `UPDATE matching_requests AS m SET status = $1, selected_date = $2, responded_at = $3
	          WHERE m.id = $4 AND m.` + actorCol + ` = $5 AND m.status = 'pending'
	          RETURNING ` + matchingColumns
	logger.DatabaseCall("UPDATE", "matching_requests", "requestID", p.ID)
	req, err := scanMatchingRequest(r.db.QueryRowContext(ctx, query, p.Status, selected, time.Now().UTC(), p.ID, p.ActorID), false)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, nil)
		logger.ExitMethod("matchingRequestRepository.Resolve", "requestID", p.ID, "applied", false)
		return nil, nil
	}
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		logger.ExitMethodWithError("matchingRequestRepository.Resolve", err, "requestID", p.ID)
		return nil, err
	}
	logger.DatabaseResult("UPDATE", 1, nil)
	logger.ExitMethod("matchingRequestRepository.Resolve", "requestID", p.ID, "applied", true)
	return req, nil
}

func (r *matchingRequestRepository) ExpireStale(ctx context.Context, today string, createdBefore time.Time) ([]domain.MatchingRequest, error) {
	query := `UPDATE matching_requests AS m SET status = 'expired', responded_at = $1
	          WHERE m.status = 'pending' AND (m.last_proposed_date < $2 OR m.created_at < $3)
	          RETURNING ` + matchingColumns

	logger.DatabaseCall("UPDATE", "matching_requests", "today", today, "createdBefore", createdBefore)
	rows, err := r.db.QueryContext(ctx, query, time.Now().UTC(), today, createdBefore)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return nil, err
	}
	defer rows.Close()

	var expired []domain.MatchingRequest
	for rows.Next() {
		req, err := scanMatchingRequest(rows, false)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("UPDATE", int64(len(expired)), nil)
	return expired, nil
}
