package auth

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"feedback-backend/internal/config"
	"feedback-backend/internal/domain"
)

type facebookProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Error     *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type facebookResolver struct {
	client *resty.Client
}

func NewFacebookResolver(cfg *config.Config) FacebookResolver {
	client := resty.New().
		SetBaseURL(cfg.FacebookGraphURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &facebookResolver{client: client}
}

func (r *facebookResolver) Resolve(ctx context.Context, accessToken string) (*domain.Claim, error) {
	var profile facebookProfile

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "id,email,first_name,last_name",
			"access_token": accessToken,
		}).
		SetResult(&profile).
		SetError(&profile).
		Get("/me")
	if err != nil {
		return nil, ErrProviderTokenInvalid
	}
	if resp.IsError() || profile.Error != nil {
		return nil, ErrProviderTokenInvalid
	}

	if profile.Email == "" {
		return nil, ErrEmailPermissionRequired
	}

	return &domain.Claim{
		Email:      profile.Email,
		ExternalID: profile.ID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
	}, nil
}
