package sms

import (
	"context"
	"fmt"

	"github.com/vonage/vonage-go-sdk"

	"feedback-backend/internal/config"
)

type Service interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

type service struct {
	client *vonage.SMSClient
	from   string
}

func NewService(cfg *config.Config) Service {
	auth := vonage.CreateAuthFromKeySecret(cfg.VonageAPIKey, cfg.VonageAPISecret)
	return &service{
		client: vonage.NewSMSClient(auth),
		from:   cfg.VonageFrom,
	}
}

func (s *service) Send(ctx context.Context, phoneNumber, message string) error {
	response, errResp, err := s.client.Send(s.from, phoneNumber, message, vonage.SMSOpts{})
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if len(response.Messages) == 0 {
		return fmt.Errorf("empty SMS response for %s", phoneNumber)
	}
	if response.Messages[0].Status != "0" {
		return fmt.Errorf("SMS rejected for %s: %s", phoneNumber, errResp.Messages[0].ErrorText)
	}

	return nil
}
