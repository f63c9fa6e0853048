package report_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/mocks"
	"feedback-backend/internal/service/report"
)

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	adminUser := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("Metrics Come From The Store", func(t *testing.T) {
		mockReportRepo := new(mocks.ReportRepository)
		mockFeedbackRepo := new(mocks.FeedbackRepository)
		svc := report.NewService(mockReportRepo, mockFeedbackRepo)

		mockFeedbackRepo.On("CountByStatus", ctx, domain.StatusResolved, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(12), nil).Once()
		mockFeedbackRepo.On("CountByStatus", ctx, domain.StatusPending, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(int64(3), nil).Once()
		mockFeedbackRepo.On("AverageRating", ctx, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
			Return(4.2, nil).Once()
		mockReportRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Report) bool {
			return r.AdminID == adminUser.ID && r.PeriodStart.Before(r.PeriodEnd)
		})).Return(nil).Once()

		rep, err := svc.Generate(ctx, adminUser, domain.CreateReportInput{ReportType: domain.ReportWeekly})

		assert.NoError(t, err)
		require.NotNil(t, rep)
		assert.Equal(t, int64(12), rep.ResolvedCount)
		assert.Equal(t, int64(3), rep.PendingCount)
		assert.InDelta(t, 4.2, rep.SatisfactionScore, 0.001)
		mockReportRepo.AssertExpectations(t)
	})

	t.Run("Non-Admins Are Rejected", func(t *testing.T) {
		mockReportRepo := new(mocks.ReportRepository)
		svc := report.NewService(mockReportRepo, new(mocks.FeedbackRepository))

		for _, role := range []domain.Role{domain.RolePatient, domain.RoleStaff} {
			rep, err := svc.Generate(ctx, &domain.User{ID: uuid.New(), Role: role}, domain.CreateReportInput{ReportType: domain.ReportDaily})

			assert.ErrorIs(t, err, report.ErrOnlyAdmins)
			assert.Nil(t, rep)
		}
		mockReportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Report Type", func(t *testing.T) {
		svc := report.NewService(new(mocks.ReportRepository), new(mocks.FeedbackRepository))

		rep, err := svc.Generate(ctx, adminUser, domain.CreateReportInput{ReportType: "Yearly"})

		assert.ErrorIs(t, err, report.ErrInvalidReportType)
		assert.Nil(t, rep)
	})
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()
	adminUser := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("Produces A Workbook", func(t *testing.T) {
		mockReportRepo := new(mocks.ReportRepository)
		svc := report.NewService(mockReportRepo, new(mocks.FeedbackRepository))

		rep := &domain.Report{
			ID:         uuid.New(),
			AdminID:    adminUser.ID,
			ReportType: domain.ReportMonthly,
		}
		mockReportRepo.On("GetByID", ctx, rep.ID).Return(rep, nil).Once()

		data, fileName, err := svc.Export(ctx, adminUser, rep.ID)

		assert.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Contains(t, fileName, "Monthly-report-")
		assert.Contains(t, fileName, ".xlsx")
	})

	t.Run("Another Admin's Report Is Not Found", func(t *testing.T) {
		mockReportRepo := new(mocks.ReportRepository)
		svc := report.NewService(mockReportRepo, new(mocks.FeedbackRepository))

		rep := &domain.Report{ID: uuid.New(), AdminID: uuid.New()}
		mockReportRepo.On("GetByID", ctx, rep.ID).Return(rep, nil).Once()

		data, _, err := svc.Export(ctx, adminUser, rep.ID)

		assert.ErrorIs(t, err, report.ErrNotFound)
		assert.Nil(t, data)
	})
}

func TestReportService_List(t *testing.T) {
	ctx := context.Background()
	adminUser := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	mockReportRepo := new(mocks.ReportRepository)
	svc := report.NewService(mockReportRepo, new(mocks.FeedbackRepository))

	mockReportRepo.On("ListByAdmin", ctx, adminUser.ID).
		Return([]domain.Report{{ID: uuid.New()}}, nil).Once()

	reports, err := svc.List(ctx, adminUser)

	assert.NoError(t, err)
	assert.Len(t, reports, 1)
}
