package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-backend/internal/domain"
)

// Constraint names the username retry loop keys on.
const (
	ConstraintUsersUsername = "users_username_key"
	ConstraintUsersEmail    = "users_email_key"
)

type UserRepository interface {
	// CreateWithProfile inserts the user and its profile in one transaction
	// so no creation path can leave a user without a profile.
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByFacebookID(ctx context.Context, facebookID string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (user_id, email, username, password_hash, first_name, last_name,
			role, auth_provider, facebook_id, google_id, is_verified, preferred_language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, userQuery,
		user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.AuthProvider, user.FacebookID, user.GoogleID, user.IsVerified, user.PreferredLanguage,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	profile.UserID = user.ID
	profileQuery := `
		INSERT INTO profiles (user_id, phone_number, notification_preference, picture_url, bio, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, profileQuery,
		profile.UserID, profile.PhoneNumber, profile.NotificationPreference,
		profile.PictureURL, profile.Bio, profile.DateOfBirth,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByFacebookID(ctx context.Context, facebookID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE facebook_id = $1`

	err := r.db.GetContext(ctx, &user, query, facebookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE google_id = $1`

	err := r.db.GetContext(ctx, &user, query, googleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = :email, username = :username, password_hash = :password_hash,
			first_name = :first_name, last_name = :last_name, role = :role,
			auth_provider = :auth_provider, facebook_id = :facebook_id, google_id = :google_id,
			is_verified = :is_verified, preferred_language = :preferred_language, updated_at = NOW()
		WHERE user_id = :user_id`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE role = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &users, query, role)
	return users, err
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, userID, token, expiresAt).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("user not found")
	}
	return err
}
