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

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, password_hash, display_name, avatar_url, occupation, bio, interests, push_token, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	var interests []string
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.DisplayName, &p.AvatarURL, &p.Occupation, &p.Bio,
		pq.Array(&interests), &p.PushToken, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	p.Interests = interests
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1)`
	return scanProfile(r.db.QueryRowContext(ctx, query, email))
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	logger.EnterMethod("profileRepository.Update", "userID", p.ID)

	query := `UPDATE profiles SET display_name = $1, avatar_url = $2, occupation = $3, bio = $4, interests = $5, updated_at = $6
	          WHERE id = $7`
	p.UpdatedAt = time.Now().UTC()
	logger.DatabaseCall("UPDATE", "profiles", "userID", p.ID)
	res, err := r.db.ExecContext(ctx, query, p.DisplayName, p.AvatarURL, p.Occupation, p.Bio, pq.Array(p.Interests), p.UpdatedAt, p.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	logger.ExitMethod("profileRepository.Update", "userID", p.ID)
	return nil
}
