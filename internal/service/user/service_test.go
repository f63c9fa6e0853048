package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/mocks"
	"feedback-backend/internal/service/user"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Unverified User Cannot Change Email", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockProfileRepo := new(mocks.ProfileRepository)
		svc := user.NewService(mockUserRepo, mockProfileRepo, new(mocks.StorageService), zap.NewNop())

		actor := &domain.User{ID: uuid.New(), Email: "old@example.com", IsVerified: false}
		mockProfileRepo.On("GetByUserID", ctx, actor.ID).Return(&domain.Profile{UserID: actor.ID}, nil).Once()

		_, _, err := svc.UpdateProfile(ctx, actor, domain.UpdateProfileInput{
			Email: strPtr("new@example.com"),
		})

		assert.ErrorIs(t, err, user.ErrEmailChangeNotAllowed)
		mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Verified User Changes Email And Preference", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockProfileRepo := new(mocks.ProfileRepository)
		svc := user.NewService(mockUserRepo, mockProfileRepo, new(mocks.StorageService), zap.NewNop())

		actor := &domain.User{ID: uuid.New(), Email: "old@example.com", IsVerified: true}
		profile := &domain.Profile{UserID: actor.ID, NotificationPreference: domain.PrefBoth}
		mockProfileRepo.On("GetByUserID", ctx, actor.ID).Return(profile, nil).Once()
		mockUserRepo.On("Update", ctx, actor).Return(nil).Once()
		mockProfileRepo.On("Update", ctx, profile).Return(nil).Once()

		pref := domain.PrefEmail
		u, p, err := svc.UpdateProfile(ctx, actor, domain.UpdateProfileInput{
			Email:                  strPtr("new@example.com"),
			NotificationPreference: &pref,
		})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", u.Email)
		assert.Equal(t, domain.PrefEmail, p.NotificationPreference)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Invalid Preference Rejected", func(t *testing.T) {
		mockProfileRepo := new(mocks.ProfileRepository)
		svc := user.NewService(new(mocks.UserRepository), mockProfileRepo, new(mocks.StorageService), zap.NewNop())

		actor := &domain.User{ID: uuid.New(), IsVerified: true}
		mockProfileRepo.On("GetByUserID", ctx, actor.ID).Return(&domain.Profile{UserID: actor.ID}, nil).Once()

		bad := domain.NotificationPreference("Carrier Pigeon")
		_, _, err := svc.UpdateProfile(ctx, actor, domain.UpdateProfileInput{
			NotificationPreference: &bad,
		})

		assert.ErrorIs(t, err, user.ErrInvalidPreference)
	})

	t.Run("Missing Profile", func(t *testing.T) {
		mockProfileRepo := new(mocks.ProfileRepository)
		svc := user.NewService(new(mocks.UserRepository), mockProfileRepo, new(mocks.StorageService), zap.NewNop())

		actor := &domain.User{ID: uuid.New()}
		mockProfileRepo.On("GetByUserID", ctx, actor.ID).Return(nil, nil).Once()

		_, _, err := svc.UpdateProfile(ctx, actor, domain.UpdateProfileInput{})

		assert.ErrorIs(t, err, user.ErrProfileNotFound)
	})
}

func TestUserService_UpdatePicture(t *testing.T) {
	ctx := context.Background()

	mockProfileRepo := new(mocks.ProfileRepository)
	mockStorage := new(mocks.StorageService)
	svc := user.NewService(new(mocks.UserRepository), mockProfileRepo, mockStorage, zap.NewNop())

	actor := &domain.User{ID: uuid.New()}
	profile := &domain.Profile{UserID: actor.ID}
	mockProfileRepo.On("GetByUserID", ctx, actor.ID).Return(profile, nil).Once()
	mockStorage.On("Upload", ctx, "profile-pictures", "me.jpg", "image/jpeg", int64(42), nil).
		Return("profile-pictures/2026/08/pic", nil).Once()
	mockStorage.On("PublicURL", "profile-pictures/2026/08/pic").Return("https://cdn/pic").Once()
	mockProfileRepo.On("Update", ctx, profile).Return(nil).Once()

	got, err := svc.UpdatePicture(ctx, actor, "me.jpg", "image/jpeg", 42, nil)

	assert.NoError(t, err)
	require.NotNil(t, got.PictureURL)
	assert.Equal(t, "https://cdn/pic", *got.PictureURL)
}
