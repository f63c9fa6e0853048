package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
)

var (
	ErrOnlyAdmins        = errors.New("only admins can manage reports")
	ErrInvalidReportType = errors.New("invalid report type")
	ErrNotFound          = errors.New("report not found")
)

type Service interface {
	Generate(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error)
	List(ctx context.Context, actor *domain.User) ([]domain.Report, error)
	Export(ctx context.Context, actor *domain.User, id uuid.UUID) ([]byte, string, error)
}

type service struct {
	reportRepo   repository.ReportRepository
	feedbackRepo repository.FeedbackRepository
	now          func() time.Time
}

func NewService(reportRepo repository.ReportRepository, feedbackRepo repository.FeedbackRepository) Service {
	return &service{
		reportRepo:   reportRepo,
		feedbackRepo: feedbackRepo,
		now:          time.Now,
	}
}

// Generate computes the report metrics from the store rather than trusting
// caller-supplied counts.
func (s *service) Generate(ctx context.Context, actor *domain.User, input domain.CreateReportInput) (*domain.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !input.ReportType.IsValid() {
		return nil, ErrInvalidReportType
	}

	from, to := input.ReportType.Period(s.now())

	resolved, err := s.feedbackRepo.CountByStatus(ctx, domain.StatusResolved, from, to)
	if err != nil {
		return nil, err
	}
	pending, err := s.feedbackRepo.CountByStatus(ctx, domain.StatusPending, from, to)
	if err != nil {
		return nil, err
	}
	score, err := s.feedbackRepo.AverageRating(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:                uuid.New(),
		AdminID:           actor.ID,
		ReportType:        input.ReportType,
		PeriodStart:       from,
		PeriodEnd:         to,
		ResolvedCount:     resolved,
		PendingCount:      pending,
		SatisfactionScore: score,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *service) List(ctx context.Context, actor *domain.User) ([]domain.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.reportRepo.ListByAdmin(ctx, actor.ID)
}

// Export renders the report as an Excel workbook and returns its bytes plus
// a download filename.
func (s *service) Export(ctx context.Context, actor *domain.User, id uuid.UUID) ([]byte, string, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, "", err
	}

	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if report == nil || report.AdminID != actor.ID {
		return nil, "", ErrNotFound
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Report Type", string(report.ReportType)},
		{"Period Start", report.PeriodStart.Format(time.RFC3339)},
		{"Period End", report.PeriodEnd.Format(time.RFC3339)},
		{"Resolved Feedback", report.ResolvedCount},
		{"Pending Feedback", report.PendingCount},
		{"Overall Satisfaction Score", report.SatisfactionScore},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("%s-report-%s.xlsx", report.ReportType, report.GeneratedAt.Format("2006-01-02"))
	return buf.Bytes(), fileName, nil
}

func requireAdmin(actor *domain.User) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RolePatient, domain.RoleStaff:
		return ErrOnlyAdmins
	default:
		return ErrOnlyAdmins
	}
}
