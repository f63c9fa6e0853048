package domain

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        uuid.UUID      `json:"id" db:"feedback_id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Category  string         `json:"category" db:"category"`
	Content   string         `json:"feedback_text" db:"content"`
	Rating    int            `json:"rating" db:"rating"`
	Status    FeedbackStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	Attachments []Attachment `json:"attachments,omitempty" db:"-"`
}

type FeedbackStatus string

const (
	StatusPending    FeedbackStatus = "Pending"
	StatusInProgress FeedbackStatus = "In Progress"
	StatusResolved   FeedbackStatus = "Resolved"
)

func (s FeedbackStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	default:
		return false
	}
}

// CanTransitionTo enforces the forward-only Pending → In Progress → Resolved
// lifecycle.
func (s FeedbackStatus) CanTransitionTo(next FeedbackStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress || next == StatusResolved
	case StatusInProgress:
		return next == StatusResolved
	case StatusResolved:
		return false
	default:
		return false
	}
}

const (
	RatingMin = 0
	RatingMax = 5
)

type Attachment struct {
	ID          uuid.UUID `json:"id" db:"attachment_id"`
	FeedbackID  uuid.UUID `json:"feedback_id" db:"feedback_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	StoragePath string    `json:"-" db:"storage_path"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`

	URL string `json:"url,omitempty" db:"-"`
}

type Response struct {
	ID          uuid.UUID `json:"id" db:"response_id"`
	FeedbackID  uuid.UUID `json:"feedback_id" db:"feedback_id"`
	ResponderID uuid.UUID `json:"responder_id" db:"responder_id"`
	Content     string    `json:"response_text" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateFeedbackInput struct {
	Category string `json:"category" validate:"required"`
	Content  string `json:"feedback_text" validate:"required"`
	Rating   int    `json:"rating"`
}

type CreateResponseInput struct {
	Content string `json:"response_text" validate:"required"`
}

type UpdateFeedbackStatusInput struct {
	Status FeedbackStatus `json:"status" validate:"required"`
}
