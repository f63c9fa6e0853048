package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/pkg/i18n"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service/email"
	"feedback-backend/internal/service/sms"
)

var ErrNotFound = errors.New("notification not found")

const unreadCountTTL = 5 * time.Minute

type Service interface {
	// NotifyFeedbackCreated fans a new-feedback event out to every admin.
	NotifyFeedbackCreated(ctx context.Context, fb *domain.Feedback, author *domain.User) error
	// NotifyResponseCreated notifies the feedback's owning patient.
	NotifyResponseCreated(ctx context.Context, resp *domain.Response, fb *domain.Feedback, responder *domain.User) error

	List(ctx context.Context, user *domain.User, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Notification, error)
	UnreadCount(ctx context.Context, user *domain.User) (int64, error)
}

type service struct {
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	emailSvc    email.Service
	smsSvc      sms.Service
	redis       *redis.Client
	logger      *zap.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	emailSvc email.Service,
	smsSvc sms.Service,
	redisClient *redis.Client,
	logger *zap.Logger,
) Service {
	return &service{
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		smsSvc:      smsSvc,
		redis:       redisClient,
		logger:      logger,
	}
}

// outboundMessage is one pending external send. The dispatcher accumulates
// these while writing the durable in-app notifications and only processes
// them afterwards, so a provider failure can never affect stored state.
type outboundMessage struct {
	email       string
	phoneNumber string
	subject     string
	body        string
	sendEmail   bool
	sendSMS     bool
}

func (s *service) NotifyFeedbackCreated(ctx context.Context, fb *domain.Feedback, author *domain.User) error {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	var outbox []outboundMessage
	for i := range admins {
		admin := &admins[i]

		msg := fmt.Sprintf(
			i18n.Translate(admin.PreferredLanguage, "notification.new_feedback"),
			author.Username, fb.Content,
		)
		subject := i18n.Translate(admin.PreferredLanguage, "email.new_feedback_subject")

		out, err := s.deliverTo(ctx, admin, &fb.ID, msg, subject)
		if err != nil {
			// One failed recipient must not block the others.
			s.logger.Error("failed to create feedback notification",
				zap.String("recipient_id", admin.ID.String()),
				zap.String("feedback_id", fb.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if out != nil {
			outbox = append(outbox, *out)
		}
	}

	s.processOutbox(ctx, outbox)
	return nil
}

func (s *service) NotifyResponseCreated(ctx context.Context, resp *domain.Response, fb *domain.Feedback, responder *domain.User) error {
	patient, err := s.userRepo.GetByID(ctx, fb.UserID)
	if err != nil {
		return fmt.Errorf("failed to get feedback owner: %w", err)
	}
	if patient == nil {
		return fmt.Errorf("feedback owner %s not found", fb.UserID)
	}

	msg := fmt.Sprintf(
		i18n.Translate(patient.PreferredLanguage, "notification.response_received"),
		responder.Username, resp.Content,
	)
	subject := i18n.Translate(patient.PreferredLanguage, "email.response_subject")

	out, err := s.deliverTo(ctx, patient, &fb.ID, msg, subject)
	if err != nil {
		return err
	}
	if out != nil {
		s.processOutbox(ctx, []outboundMessage{*out})
	}
	return nil
}

// deliverTo writes the in-app notification (always, regardless of channel
// preference) and returns the external send, if any, for the outbox.
func (s *service) deliverTo(ctx context.Context, recipient *domain.User, feedbackID *uuid.UUID, message, subject string) (*outboundMessage, error) {
	notif := &domain.Notification{
		ID:         uuid.New(),
		UserID:     recipient.ID,
		FeedbackID: feedbackID,
		Message:    message,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	s.invalidateUnreadCount(ctx, recipient.ID)

	profile, err := s.profileRepo.GetByUserID(ctx, recipient.ID)
	if err != nil || profile == nil {
		if err != nil {
			s.logger.Warn("failed to load recipient profile, skipping external send",
				zap.String("recipient_id", recipient.ID.String()),
				zap.Error(err),
			)
		}
		return nil, nil
	}

	out := outboundMessage{
		email:     recipient.Email,
		subject:   subject,
		body:      message,
		sendEmail: profile.NotificationPreference.WantsEmail(),
	}
	if profile.NotificationPreference.WantsSMS() && profile.PhoneNumber != nil && *profile.PhoneNumber != "" {
		out.sendSMS = true
		out.phoneNumber = *profile.PhoneNumber
	}

	if !out.sendEmail && !out.sendSMS {
		return nil, nil
	}
	return &out, nil
}

// processOutbox runs the best-effort external sends. Failures are logged and
// swallowed: delivery is at-most-once with no retry queue.
func (s *service) processOutbox(ctx context.Context, outbox []outboundMessage) {
	for _, out := range outbox {
		if out.sendEmail {
			if err := s.emailSvc.SendNotificationEmail(ctx, out.email, out.subject, out.body); err != nil {
				s.logger.Error("failed to send notification email",
					zap.String("email", out.email),
					zap.Error(err),
				)
			}
		}
		if out.sendSMS {
			if err := s.smsSvc.Send(ctx, out.phoneNumber, out.body); err != nil {
				s.logger.Error("failed to send notification SMS",
					zap.String("phone_number", out.phoneNumber),
					zap.Error(err),
				)
			}
		}
	}
}

func (s *service) List(ctx context.Context, user *domain.User, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, user.ID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

// MarkAsRead flips the notification to read. Marking an already-read
// notification is a no-op; a notification owned by someone else is reported
// as not found.
func (s *service) MarkAsRead(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil || notif.UserID != user.ID {
		return nil, ErrNotFound
	}

	if notif.IsRead {
		return notif, nil
	}

	if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateUnreadCount(ctx, user.ID)

	notif.IsRead = true
	now := time.Now()
	notif.ReadAt = &now
	return notif, nil
}

func (s *service) UnreadCount(ctx context.Context, user *domain.User) (int64, error) {
	key := unreadCountKey(user.ID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountTTL).Err(); err != nil {
			s.logger.Warn("failed to cache unread count", zap.Error(err))
		}
	}

	return count, nil
}

func (s *service) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate unread count cache", zap.Error(err))
	}
}

func unreadCountKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}
