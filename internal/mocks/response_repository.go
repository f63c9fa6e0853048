package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"feedback-backend/internal/domain"
)

type ResponseRepository struct {
	mock.Mock
}

func (m *ResponseRepository) Create(ctx context.Context, resp *domain.Response) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

func (m *ResponseRepository) ListByFeedback(ctx context.Context, feedbackID uuid.UUID) ([]domain.Response, error) {
	args := m.Called(ctx, feedbackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}
