package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID  `json:"id" db:"notification_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	FeedbackID *uuid.UUID `json:"feedback_id,omitempty" db:"feedback_id"`
	Message    string     `json:"message" db:"message"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
