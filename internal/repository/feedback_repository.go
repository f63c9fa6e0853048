package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-backend/internal/domain"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Feedback, int64, error)
	ListAll(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error
	AddAttachment(ctx context.Context, att *domain.Attachment) error
	ListAttachments(ctx context.Context, feedbackID uuid.UUID) ([]domain.Attachment, error)
	CountByStatus(ctx context.Context, status domain.FeedbackStatus, from, to time.Time) (int64, error)
	AverageRating(ctx context.Context, from, to time.Time) (float64, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedback (feedback_id, user_id, category, content, rating, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		fb.ID, fb.UserID, fb.Category, fb.Content, fb.Rating, fb.Status,
	).Scan(&fb.CreatedAt)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	var fb domain.Feedback
	query := `SELECT * FROM feedback WHERE feedback_id = $1`

	err := r.db.GetContext(ctx, &fb, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM feedback WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var items []domain.Feedback
	query := `
		SELECT * FROM feedback
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &items, query, userID, params.PageSize, params.Offset())
	return items, total, err
}

func (r *feedbackRepository) ListAll(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM feedback`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var items []domain.Feedback
	query := `
		SELECT * FROM feedback
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &items, query, params.PageSize, params.Offset())
	return items, total, err
}

func (r *feedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error {
	query := `UPDATE feedback SET status = $2 WHERE feedback_id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *feedbackRepository) AddAttachment(ctx context.Context, att *domain.Attachment) error {
	query := `
		INSERT INTO feedback_attachments (attachment_id, feedback_id, file_name, storage_path, mime_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uploaded_at`

	return r.db.QueryRowxContext(ctx, query,
		att.ID, att.FeedbackID, att.FileName, att.StoragePath, att.MimeType, att.FileSize,
	).Scan(&att.UploadedAt)
}

func (r *feedbackRepository) ListAttachments(ctx context.Context, feedbackID uuid.UUID) ([]domain.Attachment, error) {
	var atts []domain.Attachment
	query := `SELECT * FROM feedback_attachments WHERE feedback_id = $1 ORDER BY uploaded_at ASC`

	err := r.db.SelectContext(ctx, &atts, query, feedbackID)
	return atts, err
}

func (r *feedbackRepository) CountByStatus(ctx context.Context, status domain.FeedbackStatus, from, to time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM feedback WHERE status = $1 AND created_at BETWEEN $2 AND $3`
	err := r.db.GetContext(ctx, &count, query, status, from, to)
	return count, err
}

func (r *feedbackRepository) AverageRating(ctx context.Context, from, to time.Time) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE created_at BETWEEN $1 AND $2`
	err := r.db.GetContext(ctx, &avg, query, from, to)
	return avg, err
}
