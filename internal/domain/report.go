package domain

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID                uuid.UUID  `json:"id" db:"report_id"`
	AdminID           uuid.UUID  `json:"admin_id" db:"admin_id"`
	ReportType        ReportType `json:"report_type" db:"report_type"`
	PeriodStart       time.Time  `json:"period_start" db:"period_start"`
	PeriodEnd         time.Time  `json:"period_end" db:"period_end"`
	ResolvedCount     int64      `json:"resolved_feedback_count" db:"resolved_count"`
	PendingCount      int64      `json:"pending_feedback_count" db:"pending_count"`
	SatisfactionScore float64    `json:"overall_satisfaction_score" db:"satisfaction_score"`
	GeneratedAt       time.Time  `json:"generated_at" db:"generated_at"`
}

type ReportType string

const (
	ReportDaily   ReportType = "Daily"
	ReportWeekly  ReportType = "Weekly"
	ReportMonthly ReportType = "Monthly"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	default:
		return false
	}
}

// Period returns the covered window ending at now.
func (t ReportType) Period(now time.Time) (time.Time, time.Time) {
	switch t {
	case ReportDaily:
		return now.AddDate(0, 0, -1), now
	case ReportWeekly:
		return now.AddDate(0, 0, -7), now
	case ReportMonthly:
		return now.AddDate(0, -1, 0), now
	default:
		return now, now
	}
}

type CreateReportInput struct {
	ReportType ReportType `json:"report_type" validate:"required"`
}
