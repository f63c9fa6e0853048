package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SMSService struct {
	mock.Mock
}

func (m *SMSService) Send(ctx context.Context, phoneNumber, message string) error {
	args := m.Called(ctx, phoneNumber, message)
	return args.Error(0)
}
