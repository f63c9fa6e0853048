package feedback

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service/notification"
	"feedback-backend/internal/service/storage"
)

var (
	ErrOnlyPatients      = errors.New("only patients can submit feedback")
	ErrNotAllowed        = errors.New("insufficient permissions for this feedback")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrNotFound          = errors.New("feedback not found")
	ErrInvalidStatus     = errors.New("invalid feedback status")
	ErrInvalidTransition = errors.New("feedback status can only move forward")
)

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateFeedbackInput) (*domain.Feedback, error)
	List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.Feedback], error)
	Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Feedback, error)
	AddAttachment(ctx context.Context, actor *domain.User, feedbackID uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Attachment, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateFeedbackStatusInput) (*domain.Feedback, error)
	Respond(ctx context.Context, actor *domain.User, feedbackID uuid.UUID, input domain.CreateResponseInput) (*domain.Response, error)
	ListResponses(ctx context.Context, actor *domain.User, feedbackID uuid.UUID) ([]domain.Response, error)
}

type service struct {
	feedbackRepo repository.FeedbackRepository
	responseRepo repository.ResponseRepository
	notifSvc     notification.Service
	storageSvc   storage.Service
	logger       *zap.Logger
}

func NewService(
	feedbackRepo repository.FeedbackRepository,
	responseRepo repository.ResponseRepository,
	notifSvc notification.Service,
	storageSvc storage.Service,
	logger *zap.Logger,
) Service {
	return &service{
		feedbackRepo: feedbackRepo,
		responseRepo: responseRepo,
		notifSvc:     notifSvc,
		storageSvc:   storageSvc,
		logger:       logger,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateFeedbackInput) (*domain.Feedback, error) {
	switch actor.Role {
	case domain.RolePatient:
	case domain.RoleAdmin, domain.RoleStaff:
		return nil, ErrOnlyPatients
	default:
		return nil, ErrOnlyPatients
	}

	if input.Rating < domain.RatingMin || input.Rating > domain.RatingMax {
		return nil, ErrInvalidRating
	}

	fb := &domain.Feedback{
		ID:       uuid.New(),
		UserID:   actor.ID,
		Category: input.Category,
		Content:  input.Content,
		Rating:   input.Rating,
		Status:   domain.StatusPending,
	}

	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	// Fan-out is best-effort: the feedback write stands even if no admin
	// could be notified.
	if err := s.notifSvc.NotifyFeedbackCreated(ctx, fb, actor); err != nil {
		s.logger.Error("feedback notification fan-out failed",
			zap.String("feedback_id", fb.ID.String()),
			zap.Error(err),
		)
	}

	return fb, nil
}

func (s *service) List(ctx context.Context, actor *domain.User, params domain.PaginationParams) (domain.PaginatedResponse[domain.Feedback], error) {
	var (
		items []domain.Feedback
		total int64
		err   error
	)

	// Patients see their own submissions, admins and staff see everything.
	switch actor.Role {
	case domain.RolePatient:
		items, total, err = s.feedbackRepo.ListByUser(ctx, actor.ID, params)
	case domain.RoleAdmin, domain.RoleStaff:
		items, total, err = s.feedbackRepo.ListAll(ctx, params)
	default:
		return domain.PaginatedResponse[domain.Feedback]{}, ErrNotAllowed
	}
	if err != nil {
		return domain.PaginatedResponse[domain.Feedback]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) Get(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Feedback, error) {
	fb, err := s.getVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	atts, err := s.feedbackRepo.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range atts {
		atts[i].URL = s.storageSvc.PublicURL(atts[i].StoragePath)
	}
	fb.Attachments = atts

	return fb, nil
}

func (s *service) AddAttachment(ctx context.Context, actor *domain.User, feedbackID uuid.UUID, fileName, mimeType string, fileSize int64, reader io.Reader) (*domain.Attachment, error) {
	fb, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrNotFound
	}
	if fb.UserID != actor.ID {
		return nil, ErrNotAllowed
	}

	storagePath, err := s.storageSvc.Upload(ctx, "attachments", fileName, mimeType, fileSize, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	att := &domain.Attachment{
		ID:          uuid.New(),
		FeedbackID:  feedbackID,
		FileName:    fileName,
		StoragePath: storagePath,
		MimeType:    mimeType,
		FileSize:    fileSize,
	}

	if err := s.feedbackRepo.AddAttachment(ctx, att); err != nil {
		_ = s.storageSvc.Remove(ctx, storagePath)
		return nil, err
	}

	att.URL = s.storageSvc.PublicURL(storagePath)
	return att, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateFeedbackStatusInput) (*domain.Feedback, error) {
	if !actor.Role.CanRespond() {
		return nil, ErrNotAllowed
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	fb, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrNotFound
	}

	if !fb.Status.CanTransitionTo(input.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.feedbackRepo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, err
	}

	fb.Status = input.Status
	return fb, nil
}

func (s *service) Respond(ctx context.Context, actor *domain.User, feedbackID uuid.UUID, input domain.CreateResponseInput) (*domain.Response, error) {
	if !actor.Role.CanRespond() {
		return nil, ErrNotAllowed
	}

	fb, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrNotFound
	}

	resp := &domain.Response{
		ID:          uuid.New(),
		FeedbackID:  feedbackID,
		ResponderID: actor.ID,
		Content:     input.Content,
	}

	if err := s.responseRepo.Create(ctx, resp); err != nil {
		return nil, err
	}

	if err := s.notifSvc.NotifyResponseCreated(ctx, resp, fb, actor); err != nil {
		s.logger.Error("response notification failed",
			zap.String("response_id", resp.ID.String()),
			zap.String("feedback_id", feedbackID.String()),
			zap.Error(err),
		)
	}

	return resp, nil
}

func (s *service) ListResponses(ctx context.Context, actor *domain.User, feedbackID uuid.UUID) ([]domain.Response, error) {
	if _, err := s.getVisible(ctx, actor, feedbackID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListByFeedback(ctx, feedbackID)
}

// getVisible loads the feedback and checks the actor may see it: the owning
// patient, or any admin/staff.
func (s *service) getVisible(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Feedback, error) {
	fb, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, ErrNotFound
	}
	if fb.UserID != actor.ID && !actor.Role.CanRespond() {
		return nil, ErrNotFound
	}
	return fb, nil
}
