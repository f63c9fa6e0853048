package user

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service/storage"
)

var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrEmailChangeNotAllowed = errors.New("email change is not allowed for unverified users")
	ErrInvalidPreference     = errors.New("invalid notification preference")
)

type Service interface {
	GetProfile(ctx context.Context, actor *domain.User) (*domain.User, *domain.Profile, error)
	UpdateProfile(ctx context.Context, actor *domain.User, input domain.UpdateProfileInput) (*domain.User, *domain.Profile, error)
	UpdatePicture(ctx context.Context, actor *domain.User, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Profile, error)
}

type service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	storageSvc  storage.Service
	logger      *zap.Logger
}

func NewService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, storageSvc storage.Service, logger *zap.Logger) Service {
	return &service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		storageSvc:  storageSvc,
		logger:      logger,
	}
}

func (s *service) GetProfile(ctx context.Context, actor *domain.User) (*domain.User, *domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrProfileNotFound
	}
	return actor, profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, actor *domain.User, input domain.UpdateProfileInput) (*domain.User, *domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	if profile == nil {
		return nil, nil, ErrProfileNotFound
	}

	if input.Email != nil && *input.Email != actor.Email {
		if !actor.IsVerified {
			return nil, nil, ErrEmailChangeNotAllowed
		}
		actor.Email = *input.Email
	}
	if input.FirstName != nil {
		actor.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		actor.LastName = *input.LastName
	}
	if input.PreferredLanguage != nil {
		actor.PreferredLanguage = *input.PreferredLanguage
	}

	if input.NotificationPreference != nil {
		if !input.NotificationPreference.IsValid() {
			return nil, nil, ErrInvalidPreference
		}
		profile.NotificationPreference = *input.NotificationPreference
	}
	if input.PhoneNumber != nil {
		profile.PhoneNumber = input.PhoneNumber
	}
	if input.Bio != nil {
		profile.Bio = input.Bio
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}

	if err := s.userRepo.Update(ctx, actor); err != nil {
		return nil, nil, err
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, nil, err
	}

	return actor, profile, nil
}

func (s *service) UpdatePicture(ctx context.Context, actor *domain.User, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	storagePath, err := s.storageSvc.Upload(ctx, "profile-pictures", fileName, mimeType, fileSize, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to store profile picture: %w", err)
	}

	old := profile.PictureURL
	url := s.storageSvc.PublicURL(storagePath)
	profile.PictureURL = &url

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		_ = s.storageSvc.Remove(ctx, storagePath)
		return nil, err
	}

	if old != nil {
		s.logger.Info("replaced profile picture",
			zap.String("user_id", actor.ID.String()),
		)
	}

	return profile, nil
}
