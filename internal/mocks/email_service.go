package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	args := m.Called(ctx, toEmail, name, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, subject, message string) error {
	args := m.Called(ctx, toEmail, subject, message)
	return args.Error(0)
}
