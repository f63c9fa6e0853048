package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-backend/internal/domain"
)

type ResponseRepository interface {
	Create(ctx context.Context, resp *domain.Response) error
	ListByFeedback(ctx context.Context, feedbackID uuid.UUID) ([]domain.Response, error)
}

type responseRepository struct {
	db *sqlx.DB
}

func NewResponseRepository(db *sqlx.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	query := `
		INSERT INTO responses (response_id, feedback_id, responder_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		resp.ID, resp.FeedbackID, resp.ResponderID, resp.Content,
	).Scan(&resp.CreatedAt, &resp.UpdatedAt)
}

func (r *responseRepository) ListByFeedback(ctx context.Context, feedbackID uuid.UUID) ([]domain.Response, error) {
	var responses []domain.Response
	query := `SELECT * FROM responses WHERE feedback_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &responses, query, feedbackID)
	return responses, err
}
