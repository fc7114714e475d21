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
	"members-lounge-backend/internal/repository"
	"members-lounge-backend/internal/repository/postgres"
)

var matchingCols = []string{"id", "from_user_id", "to_user_id", "status", "proposed_dates", "selected_date",
	"introduction", "message", "topic", "created_at", "responded_at"}

func TestMatchingRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchingRequestRepository(db)
	ctx := context.Background()
	from, to := uuid.New(), uuid.New()

	newReq := func() *domain.MatchingRequest {
		return &domain.MatchingRequest{
			FromUserID: from,
			ToUserID:   to,
			Status:     domain.MatchingRequestStatusPending,
			ProposedDates: []domain.ProposedDate{
				{Date: "2025-02-03", Time: "19:00"},
				{Date: "2025-02-01", Time: "20:00"},
			},
			Introduction: "Hi",
			Message:      "Drinks?",
		}
	}

	t.Run("Success", func(t *testing.T) {
		req := newReq()
		id := uuid.New()
		mock.ExpectQuery("INSERT INTO matching_requests").
			WithArgs(from, to, domain.MatchingRequestStatusPending,
				`[{"date":"2025-02-03","time":"19:00"},{"date":"2025-02-01","time":"20:00"}]`,
				"2025-02-03", "Hi", "Drinks?", "", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

		require.NoError(t, repo.Create(ctx, req))
		assert.Equal(t, id, req.ID)
		assert.False(t, req.CreatedAt.IsZero())
	})

	t.Run("DuplicatePending", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO matching_requests").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "matching_requests_one_pending"})

		err := repo.Create(ctx, newReq())
		assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchingRequestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchingRequestRepository(db)
	ctx := context.Background()
	id, from, to := uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM matching_requests m WHERE m.id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(matchingCols).AddRow(
				id.String(), from.String(), to.String(), "accepted",
				[]byte(`[{"date":"2025-02-01","time":"19:00"},{"date":"2025-02-03","time":"20:00"}]`),
				[]byte(`{"date":"2025-02-03","time":"20:00"}`),
				"Hi", "Drinks?", "", created, created.Add(time.Hour)))

		req, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.MatchingRequestStatusAccepted, req.Status)
		require.Len(t, req.ProposedDates, 2)
		assert.Equal(t, "2025-02-01", req.ProposedDates[0].Date)
		require.NotNil(t, req.SelectedDate)
		assert.Equal(t, "2025-02-03", req.SelectedDate.Date)
		require.NotNil(t, req.RespondedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM matching_requests m WHERE m.id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(matchingCols))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchingRequestRepository_ListReceived(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchingRequestRepository(db)
	ctx := context.Background()
	me, sender := uuid.New(), uuid.New()
	now := time.Now().UTC()

	cols := append(append([]string{}, matchingCols...), "p_id", "display_name", "avatar_url", "occupation")
	mock.ExpectQuery("JOIN profiles p ON p.id = m.from_user_id WHERE m.to_user_id = \\$1 ORDER BY m.created_at DESC").
		WithArgs(me).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			uuid.NewString(), sender.String(), me.String(), "pending",
			[]byte(`[{"date":"2025-02-01","time":""}]`), nil,
			"Hi", "Drinks?", "jazz", now, nil,
			sender.String(), "Alice", "", "Architect"))

	reqs, err := repo.ListReceived(ctx, me, domain.ListOptions{WithCounterpart: true})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.NotNil(t, reqs[0].Counterpart)
	assert.Equal(t, "Alice", reqs[0].Counterpart.DisplayName)
	assert.Nil(t, reqs[0].SelectedDate)
	assert.Nil(t, reqs[0].RespondedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchingRequestRepository_Resolve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchingRequestRepository(db)
	ctx := context.Background()
	id, from, to := uuid.New(), uuid.New(), uuid.New()
	sel := domain.ProposedDate{Date: "2025-02-03", Time: "20:00"}

	t.Run("Applied", func(t *testing.T) {
		mock.ExpectQuery("UPDATE matching_requests AS m SET status = \\$1, selected_date = \\$2, responded_at = \\$3\\s+WHERE m.id = \\$4 AND m.to_user_id = \\$5 AND m.status = 'pending'").
			WithArgs(domain.MatchingRequestStatusAccepted, `{"date":"2025-02-03","time":"20:00"}`, sqlmock.AnyArg(), id, to).
			WillReturnRows(sqlmock.NewRows(matchingCols).AddRow(
				id.String(), from.String(), to.String(), "accepted",
				[]byte(`[{"date":"2025-02-03","time":"20:00"}]`), []byte(`{"date":"2025-02-03","time":"20:00"}`),
				"Hi", "Drinks?", "", time.Now(), time.Now()))

		req, err := repo.Resolve(ctx, repository.ResolveParams{
			ID: id, ActorID: to, Status: domain.MatchingRequestStatusAccepted, SelectedDate: &sel,
		})
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, domain.MatchingRequestStatusAccepted, req.Status)
	})

	t.Run("GuardFailed", func(t *testing.T) {
		mock.ExpectQuery("UPDATE matching_requests AS m .+ m.from_user_id = \\$5").
			WithArgs(domain.MatchingRequestStatusCancelled, nil, sqlmock.AnyArg(), id, from).
			WillReturnRows(sqlmock.NewRows(matchingCols))

		req, err := repo.Resolve(ctx, repository.ResolveParams{
			ID: id, ActorID: from, ActorIsFrom: true, Status: domain.MatchingRequestStatusCancelled,
		})
		require.NoError(t, err)
		assert.Nil(t, req)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchingRequestRepository_ExpireStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMatchingRequestRepository(db)
	ctx := context.Background()
	cutoff := time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SET status = 'expired'.+m.last_proposed_date < \\$2 OR m.created_at < \\$3").
		WithArgs(sqlmock.AnyArg(), "2025-02-10", cutoff).
		WillReturnRows(sqlmock.NewRows(matchingCols).AddRow(
			uuid.NewString(), uuid.NewString(), uuid.NewString(), "expired",
			[]byte(`[{"date":"2025-02-01","time":"19:00"}]`), nil,
			"Hi", "Drinks?", "", time.Now(), time.Now()))

	expired, err := repo.ExpireStale(ctx, "2025-02-10", cutoff)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, domain.MatchingRequestStatusExpired, expired[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
