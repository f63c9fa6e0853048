package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"feedback-backend/internal/config"
	"feedback-backend/internal/domain"
)

type googleResolver struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleResolver(cfg *config.Config) GoogleResolver {
	return &googleResolver{
		clientID: cfg.GoogleClientID,
		validate: idtoken.Validate,
	}
}

func (r *googleResolver) Resolve(ctx context.Context, accessToken, idToken string) (*domain.Claim, error) {
	// Audience is checked separately below so a mismatch maps to its own
	// error rather than a generic verification failure.
	payload, err := r.validate(ctx, idToken, "")
	if err != nil {
		return nil, ErrTokenVerificationFailed
	}

	switch payload.Issuer {
	case "accounts.google.com", "https://accounts.google.com":
	default:
		return nil, ErrInvalidIssuer
	}

	if payload.Audience != r.clientID {
		return nil, ErrInvalidAudience
	}

	claim := &domain.Claim{
		ExternalID: payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		claim.Email = email
	}
	if given, ok := payload.Claims["given_name"].(string); ok {
		claim.FirstName = given
	}
	if family, ok := payload.Claims["family_name"].(string); ok {
		claim.LastName = family
	}

	if claim.Email == "" {
		return nil, ErrEmailPermissionRequired
	}

	return claim, nil
}
