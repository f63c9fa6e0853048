package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"feedback-backend/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyFeedbackCreated(ctx context.Context, fb *domain.Feedback, author *domain.User) error {
	args := m.Called(ctx, fb, author)
	return args.Error(0)
}

func (m *NotificationService) NotifyResponseCreated(ctx context.Context, resp *domain.Response, fb *domain.Feedback, responder *domain.User) error {
	args := m.Called(ctx, resp, fb, responder)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, user *domain.User, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, user, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, user *domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}
