package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
)

// maxUsernameAttempts bounds the retry loop when allocating a unique
// username; the DB unique constraint is the arbiter, not a read-then-count.
const maxUsernameAttempts = 5

// linkOrCreate maps a verified claim onto a local account:
//  1. a user already carrying the external id is returned as-is,
//  2. a user matching the claim's email gains the external id and provider,
//  3. otherwise a new verified user plus profile is created.
func (s *service) linkOrCreate(ctx context.Context, claim *domain.Claim, provider domain.AuthProvider) (*domain.User, bool, error) {
	user, err := s.findByExternalID(ctx, claim.ExternalID, provider)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, claim.Email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		setExternalID(user, claim.ExternalID, provider)
		user.AuthProvider = provider
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	user = &domain.User{
		ID:                uuid.New(),
		Email:             claim.Email,
		FirstName:         claim.FirstName,
		LastName:          claim.LastName,
		Role:              domain.RolePatient,
		AuthProvider:      provider,
		IsVerified:        true,
		PreferredLanguage: "en",
	}
	setExternalID(user, claim.ExternalID, provider)

	if err := s.createWithUniqueUsername(ctx, user, defaultProfile(user.ID)); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (s *service) findByExternalID(ctx context.Context, externalID string, provider domain.AuthProvider) (*domain.User, error) {
	switch provider {
	case domain.ProviderFacebook:
		return s.userRepo.GetByFacebookID(ctx, externalID)
	case domain.ProviderGoogle:
		return s.userRepo.GetByGoogleID(ctx, externalID)
	default:
		return nil, fmt.Errorf("unsupported auth provider: %s", provider)
	}
}

func setExternalID(user *domain.User, externalID string, provider domain.AuthProvider) {
	switch provider {
	case domain.ProviderFacebook:
		user.FacebookID = &externalID
	case domain.ProviderGoogle:
		user.GoogleID = &externalID
	}
}

// createWithUniqueUsername inserts the user and profile, deriving a username
// from the email local-part when none was given and retrying with an
// incrementing numeric suffix while the username constraint trips.
func (s *service) createWithUniqueUsername(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	base := user.Username
	if base == "" {
		base = usernameFromEmail(user.Email)
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		if attempt == 0 {
			user.Username = base
		} else {
			user.Username = fmt.Sprintf("%s%d", base, attempt)
		}

		err := s.userRepo.CreateWithProfile(ctx, user, profile)
		if err == nil {
			return nil
		}
		if repository.IsUniqueViolation(err, repository.ConstraintUsersUsername) {
			continue
		}
		if repository.IsUniqueViolation(err, repository.ConstraintUsersEmail) {
			return ErrEmailExists
		}
		return err
	}

	return ErrUsernameExhausted
}

func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	return strings.ToLower(local)
}

func defaultProfile(userID uuid.UUID) *domain.Profile {
	return &domain.Profile{
		UserID:                 userID,
		NotificationPreference: domain.PrefBoth,
	}
}
