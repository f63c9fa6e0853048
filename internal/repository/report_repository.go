package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-backend/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Report, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (report_id, admin_id, report_type, period_start, period_end,
			resolved_count, pending_count, satisfaction_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING generated_at`

	return r.db.QueryRowxContext(ctx, query,
		report.ID, report.AdminID, report.ReportType, report.PeriodStart, report.PeriodEnd,
		report.ResolvedCount, report.PendingCount, report.SatisfactionScore,
	).Scan(&report.GeneratedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var report domain.Report
	query := `SELECT * FROM reports WHERE report_id = $1`

	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]domain.Report, error) {
	var reports []domain.Report
	query := `SELECT * FROM reports WHERE admin_id = $1 ORDER BY generated_at DESC`

	err := r.db.SelectContext(ctx, &reports, query, adminID)
	return reports, err
}
