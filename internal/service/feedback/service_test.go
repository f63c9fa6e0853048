package feedback_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/mocks"
	"feedback-backend/internal/service/feedback"
)

func patient() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "pat", Role: domain.RolePatient}
}

func admin() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "adm", Role: domain.RoleAdmin}
}

func TestFeedbackService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepts Boundary Ratings", func(t *testing.T) {
		for _, rating := range []int{0, 5} {
			mockFeedbackRepo := new(mocks.FeedbackRepository)
			mockNotifSvc := new(mocks.NotificationService)
			svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), mockNotifSvc, new(mocks.StorageService), zap.NewNop())

			author := patient()
			mockFeedbackRepo.On("Create", ctx, mock.MatchedBy(func(fb *domain.Feedback) bool {
				return fb.UserID == author.ID && fb.Status == domain.StatusPending && fb.Rating == rating
			})).Return(nil).Once()
			mockNotifSvc.On("NotifyFeedbackCreated", ctx, mock.AnythingOfType("*domain.Feedback"), author).Return(nil).Once()

			fb, err := svc.Create(ctx, author, domain.CreateFeedbackInput{
				Category: "Service",
				Content:  "Long waiting time",
				Rating:   rating,
			})

			assert.NoError(t, err)
			require.NotNil(t, fb)
			assert.Equal(t, domain.StatusPending, fb.Status)
			mockFeedbackRepo.AssertExpectations(t)
		}
	})

	t.Run("Rejects Out Of Range Ratings", func(t *testing.T) {
		for _, rating := range []int{-1, 6} {
			mockFeedbackRepo := new(mocks.FeedbackRepository)
			svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

			fb, err := svc.Create(ctx, patient(), domain.CreateFeedbackInput{
				Category: "Service",
				Content:  "text",
				Rating:   rating,
			})

			assert.ErrorIs(t, err, feedback.ErrInvalidRating)
			assert.Nil(t, fb)
			mockFeedbackRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("Only Patients May Submit", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		fb, err := svc.Create(ctx, admin(), domain.CreateFeedbackInput{
			Category: "Service",
			Content:  "text",
			Rating:   3,
		})

		assert.ErrorIs(t, err, feedback.ErrOnlyPatients)
		assert.Nil(t, fb)
		mockFeedbackRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Notification Failure Does Not Fail The Write", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), mockNotifSvc, new(mocks.StorageService), zap.NewNop())

		author := patient()
		mockFeedbackRepo.On("Create", ctx, mock.AnythingOfType("*domain.Feedback")).Return(nil).Once()
		mockNotifSvc.On("NotifyFeedbackCreated", ctx, mock.Anything, author).Return(errors.New("smtp down")).Once()

		fb, err := svc.Create(ctx, author, domain.CreateFeedbackInput{
			Category: "Service",
			Content:  "text",
			Rating:   2,
		})

		assert.NoError(t, err)
		assert.NotNil(t, fb)
	})
}

func TestFeedbackService_List(t *testing.T) {
	ctx := context.Background()
	params := domain.DefaultPagination()

	t.Run("Patient Sees Own Submissions", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		author := patient()
		mockFeedbackRepo.On("ListByUser", ctx, author.ID, params).
			Return([]domain.Feedback{{ID: uuid.New()}}, int64(1), nil).Once()

		result, err := svc.List(ctx, author, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, int64(1), result.TotalItems)
		mockFeedbackRepo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
	})

	t.Run("Admin Sees Everything", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		mockFeedbackRepo.On("ListAll", ctx, params).
			Return([]domain.Feedback{{}, {}}, int64(2), nil).Once()

		result, err := svc.List(ctx, admin(), params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 2)
		mockFeedbackRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFeedbackService_Get(t *testing.T) {
	ctx := context.Background()

	owner := patient()
	fb := &domain.Feedback{ID: uuid.New(), UserID: owner.ID, Status: domain.StatusPending}

	t.Run("Owner Gets Attachments With URLs", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		mockStorage := new(mocks.StorageService)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), mockStorage, zap.NewNop())

		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()
		mockFeedbackRepo.On("ListAttachments", ctx, fb.ID).
			Return([]domain.Attachment{{StoragePath: "attachments/2026/08/abc"}}, nil).Once()
		mockStorage.On("PublicURL", "attachments/2026/08/abc").Return("https://cdn/abc").Once()

		got, err := svc.Get(ctx, owner, fb.ID)

		assert.NoError(t, err)
		require.Len(t, got.Attachments, 1)
		assert.Equal(t, "https://cdn/abc", got.Attachments[0].URL)
	})

	t.Run("Other Patient Gets Not Found", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()

		got, err := svc.Get(ctx, patient(), fb.ID)

		assert.ErrorIs(t, err, feedback.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestFeedbackService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Forward Transition", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		fb := &domain.Feedback{ID: uuid.New(), Status: domain.StatusPending}
		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()
		mockFeedbackRepo.On("UpdateStatus", ctx, fb.ID, domain.StatusInProgress).Return(nil).Once()

		got, err := svc.UpdateStatus(ctx, admin(), fb.ID, domain.UpdateFeedbackStatusInput{Status: domain.StatusInProgress})

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, got.Status)
	})

	t.Run("Backward Transition Rejected", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		fb := &domain.Feedback{ID: uuid.New(), Status: domain.StatusResolved}
		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()

		_, err := svc.UpdateStatus(ctx, admin(), fb.ID, domain.UpdateFeedbackStatusInput{Status: domain.StatusPending})

		assert.ErrorIs(t, err, feedback.ErrInvalidTransition)
		mockFeedbackRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Status Rejected", func(t *testing.T) {
		svc := feedback.NewService(new(mocks.FeedbackRepository), new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		_, err := svc.UpdateStatus(ctx, admin(), uuid.New(), domain.UpdateFeedbackStatusInput{Status: "Closed"})

		assert.ErrorIs(t, err, feedback.ErrInvalidStatus)
	})

	t.Run("Patients May Not Change Status", func(t *testing.T) {
		svc := feedback.NewService(new(mocks.FeedbackRepository), new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		_, err := svc.UpdateStatus(ctx, patient(), uuid.New(), domain.UpdateFeedbackStatusInput{Status: domain.StatusResolved})

		assert.ErrorIs(t, err, feedback.ErrNotAllowed)
	})
}

func TestFeedbackService_Respond(t *testing.T) {
	ctx := context.Background()

	fb := &domain.Feedback{ID: uuid.New(), UserID: uuid.New(), Status: domain.StatusPending}
	input := domain.CreateResponseInput{Content: "We are on it"}

	t.Run("Staff Responds And Patient Is Notified", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := feedback.NewService(mockFeedbackRepo, mockResponseRepo, mockNotifSvc, new(mocks.StorageService), zap.NewNop())

		staff := &domain.User{ID: uuid.New(), Username: "stf", Role: domain.RoleStaff}
		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()
		mockResponseRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Response) bool {
			return r.FeedbackID == fb.ID && r.ResponderID == staff.ID
		})).Return(nil).Once()
		mockNotifSvc.On("NotifyResponseCreated", ctx, mock.AnythingOfType("*domain.Response"), fb, staff).Return(nil).Once()

		resp, err := svc.Respond(ctx, staff, fb.ID, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Content, resp.Content)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Patients May Not Respond", func(t *testing.T) {
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := feedback.NewService(new(mocks.FeedbackRepository), mockResponseRepo, new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		resp, err := svc.Respond(ctx, patient(), fb.ID, input)

		assert.ErrorIs(t, err, feedback.ErrNotAllowed)
		assert.Nil(t, resp)
		mockResponseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing Feedback", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), new(mocks.StorageService), zap.NewNop())

		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(nil, nil).Once()

		_, err := svc.Respond(ctx, admin(), fb.ID, input)

		assert.ErrorIs(t, err, feedback.ErrNotFound)
	})
}

func TestFeedbackService_AddAttachment(t *testing.T) {
	ctx := context.Background()

	owner := patient()
	fb := &domain.Feedback{ID: uuid.New(), UserID: owner.ID}

	t.Run("Only The Owner May Attach", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		mockStorage := new(mocks.StorageService)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), mockStorage, zap.NewNop())

		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()

		att, err := svc.AddAttachment(ctx, patient(), fb.ID, "x.png", "image/png", 10, nil)

		assert.ErrorIs(t, err, feedback.ErrNotAllowed)
		assert.Nil(t, att)
		mockStorage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage Is Cleaned Up When The Insert Fails", func(t *testing.T) {
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		mockStorage := new(mocks.StorageService)
		svc := feedback.NewService(mockFeedbackRepo, new(mocks.ResponseRepository), new(mocks.NotificationService), mockStorage, zap.NewNop())

		mockFeedbackRepo.On("GetByID", ctx, fb.ID).Return(fb, nil).Once()
		mockStorage.On("Upload", ctx, "attachments", "x.png", "image/png", int64(10), nil).
			Return("attachments/2026/08/xyz", nil).Once()
		mockFeedbackRepo.On("AddAttachment", ctx, mock.AnythingOfType("*domain.Attachment")).
			Return(errors.New("insert failed")).Once()
		mockStorage.On("Remove", ctx, "attachments/2026/08/xyz").Return(nil).Once()

		att, err := svc.AddAttachment(ctx, owner, fb.ID, "x.png", "image/png", 10, nil)

		assert.Error(t, err)
		assert.Nil(t, att)
		mockStorage.AssertExpectations(t)
	})
}
