package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repositories struct {
	User         UserRepository
	Profile      ProfileRepository
	Feedback     FeedbackRepository
	Response     ResponseRepository
	Notification NotificationRepository
	Report       ReportRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Profile:      NewProfileRepository(db),
		Feedback:     NewFeedbackRepository(db),
		Response:     NewResponseRepository(db),
		Notification: NewNotificationRepository(db),
		Report:       NewReportRepository(db),
		Session:      NewSessionRepository(db),
	}
}

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation on
// the given constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
