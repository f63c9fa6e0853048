package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestFeedbackRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewFeedbackRepository(db)

	fb := &domain.Feedback{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Category: "Service",
		Content:  "Long waiting time",
		Rating:   2,
		Status:   domain.StatusPending,
	}

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO feedback")).
		WithArgs(fb.ID, fb.UserID, fb.Category, fb.Content, fb.Rating, fb.Status).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	err := repo.Create(context.Background(), fb)

	assert.NoError(t, err)
	assert.Equal(t, createdAt, fb.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewFeedbackRepository(db)

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"feedback_id", "user_id", "category", "content", "rating", "status", "created_at"}).
			AddRow(id, uuid.New(), "Service", "text", 4, "Pending", time.Now())

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM feedback WHERE feedback_id = $1")).
			WithArgs(id).
			WillReturnRows(rows)

		fb, err := repo.GetByID(context.Background(), id)

		assert.NoError(t, err)
		require.NotNil(t, fb)
		assert.Equal(t, id, fb.ID)
		assert.Equal(t, domain.StatusPending, fb.Status)
	})

	t.Run("Missing Row Yields Nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewFeedbackRepository(db)

		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM feedback WHERE feedback_id = $1")).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		fb, err := repo.GetByID(context.Background(), id)

		assert.NoError(t, err)
		assert.Nil(t, fb)
	})
}

func TestFeedbackRepository_ReportQueries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewFeedbackRepository(db)

	from := time.Now().AddDate(0, 0, -7)
	to := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM feedback WHERE status = $1 AND created_at BETWEEN $2 AND $3")).
		WithArgs(domain.StatusResolved, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	count, err := repo.CountByStatus(context.Background(), domain.StatusResolved, from, to)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), count)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE created_at BETWEEN $1 AND $2")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3.5))

	avg, err := repo.AverageRating(context.Background(), from, to)
	assert.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Lookups(t *testing.T) {
	t.Run("GetByEmail Missing Row Yields Nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE email = $1")).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsByEmail(context.Background(), "jane@example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	violation := &pq.Error{Code: "23505", Constraint: repository.ConstraintUsersUsername}

	assert.True(t, repository.IsUniqueViolation(violation, repository.ConstraintUsersUsername))
	assert.True(t, repository.IsUniqueViolation(violation, ""))
	assert.False(t, repository.IsUniqueViolation(violation, repository.ConstraintUsersEmail))
	assert.False(t, repository.IsUniqueViolation(sql.ErrNoRows, ""))
}
