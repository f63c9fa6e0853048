package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"feedback-backend/internal/domain"
)

type FeedbackRepository struct {
	mock.Mock
}

func (m *FeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *FeedbackRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *FeedbackRepository) ListAll(ctx context.Context, params domain.PaginationParams) ([]domain.Feedback, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *FeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FeedbackStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *FeedbackRepository) AddAttachment(ctx context.Context, att *domain.Attachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}

func (m *FeedbackRepository) ListAttachments(ctx context.Context, feedbackID uuid.UUID) ([]domain.Attachment, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *FeedbackRepository) CountByStatus(ctx context.Context, status domain.FeedbackStatus, from, to time.Time) (int64, error) {
	args := m.Called(ctx, status, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FeedbackRepository) AverageRating(ctx context.Context, from, to time.Time) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}
