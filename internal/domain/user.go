package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                     uuid.UUID    `json:"id" db:"user_id"`
	Email                  string       `json:"email" db:"email"`
	Username               string       `json:"username" db:"username"`
	PasswordHash           *string      `json:"-" db:"password_hash"`
	FirstName              string       `json:"first_name" db:"first_name"`
	LastName               string       `json:"last_name" db:"last_name"`
	Role                   Role         `json:"role" db:"role"`
	AuthProvider           AuthProvider `json:"auth_provider" db:"auth_provider"`
	FacebookID             *string      `json:"-" db:"facebook_id"`
	GoogleID               *string      `json:"-" db:"google_id"`
	IsVerified             bool         `json:"is_verified" db:"is_verified"`
	PreferredLanguage      string       `json:"preferred_language" db:"preferred_language"`
	PasswordResetToken     *string      `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt *time.Time   `json:"-" db:"password_reset_expires_at"`
	CreatedAt              time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at" db:"updated_at"`
}

type Profile struct {
	UserID                 uuid.UUID              `json:"user_id" db:"user_id"`
	PhoneNumber            *string                `json:"phone_number" db:"phone_number"`
	NotificationPreference NotificationPreference `json:"notification_preference" db:"notification_preference"`
	PictureURL             *string                `json:"picture_url" db:"picture_url"`
	Bio                    *string                `json:"bio" db:"bio"`
	DateOfBirth            *time.Time             `json:"date_of_birth" db:"date_of_birth"`
	CreatedAt              time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at" db:"updated_at"`
}

// Role is the closed set of account roles. Authorization code switches on it
// exhaustively rather than comparing raw strings.
type Role string

const (
	RolePatient Role = "Patient"
	RoleAdmin   Role = "Admin"
	RoleStaff   Role = "Staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

// CanRespond reports whether the role may reply to patient feedback.
func (r Role) CanRespond() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	case RolePatient:
		return false
	default:
		return false
	}
}

type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderFacebook AuthProvider = "facebook"
	ProviderGoogle   AuthProvider = "google"
)

type NotificationPreference string

const (
	PrefSMS   NotificationPreference = "SMS"
	PrefEmail NotificationPreference = "Email"
	PrefBoth  NotificationPreference = "Both"
	PrefNone  NotificationPreference = "None"
)

func (p NotificationPreference) IsValid() bool {
	switch p {
	case PrefSMS, PrefEmail, PrefBoth, PrefNone:
		return true
	default:
		return false
	}
}

// WantsSMS reports whether the preference enables the SMS channel. Callers
// must additionally check that a phone number is present.
func (p NotificationPreference) WantsSMS() bool {
	return p == PrefSMS || p == PrefBoth
}

func (p NotificationPreference) WantsEmail() bool {
	return p == PrefEmail || p == PrefBoth
}

type RegisterInput struct {
	Email             string `json:"email" validate:"required,email"`
	Username          string `json:"username"`
	Password          string `json:"password" validate:"required,min=8"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	PreferredLanguage string `json:"preferred_language"`
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type FacebookLoginInput struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type GoogleLoginInput struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token" validate:"required"`
}

type UpdateProfileInput struct {
	Email                  *string                 `json:"email,omitempty"`
	FirstName              *string                 `json:"first_name,omitempty"`
	LastName               *string                 `json:"last_name,omitempty"`
	PreferredLanguage      *string                 `json:"preferred_language,omitempty"`
	PhoneNumber            *string                 `json:"phone_number,omitempty"`
	NotificationPreference *NotificationPreference `json:"notification_preference,omitempty"`
	Bio                    *string                 `json:"bio,omitempty"`
	DateOfBirth            *time.Time              `json:"date_of_birth,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claim is the verified identity bundle a provider resolver produces. For
// social providers ExternalID is the provider subject id; local logins carry
// none.
type Claim struct {
	Email      string
	ExternalID string
	FirstName  string
	LastName   string
}
