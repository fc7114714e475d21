package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository/postgres"
)

var profileCols = []string{"id", "email", "password_hash", "display_name", "avatar_url", "occupation", "bio",
	"interests", "push_token", "created_at", "updated_at"}

func TestProfileRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProfileRepository(db)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("Ada@Example.com").
			WillReturnRows(sqlmock.NewRows(profileCols).AddRow(
				id.String(), "ada@example.com", "hash", "Ada", "", "Engineer", "",
				"{jazz,whisky}", "", now, now))

		p, err := repo.GetByEmail(ctx, "Ada@Example.com")
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, []string{"jazz", "whisky"}, p.Interests)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM profiles WHERE LOWER\\(email\\)").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(profileCols))

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProfileRepository(db)
	p := &domain.Profile{ID: uuid.New(), DisplayName: "Grace", Interests: []string{"jazz"}}

	mock.ExpectExec("UPDATE profiles SET display_name").
		WithArgs("Grace", "", "", "", pq.Array([]string{"jazz"}), sqlmock.AnyArg(), p.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMembershipRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	cols := []string{"user_id", "plan", "rank", "status", "subscription_id", "current_period_end", "updated_at"}

	t.Run("Paid", func(t *testing.T) {
		end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM memberships WHERE user_id = \\$1").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(userID.String(), "paid", "gold", "active", "sub_123", end, time.Now()))

		m, err := repo.GetByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.TierPaid, m.Tier())
		assert.Equal(t, "sub_123", m.SubscriptionID)
		require.NotNil(t, m.CurrentPeriodEnd)
	})

	t.Run("NoRow", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM memberships").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByUserID(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMembershipRepository(db)
	userID := uuid.New()

	mock.ExpectExec("UPDATE memberships SET status").
		WithArgs(domain.MembershipStatusCancelled, sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateStatus(context.Background(), userID, domain.MembershipStatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}
