package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"feedback-backend/internal/config"
	"feedback-backend/internal/domain"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service/email"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email/username or password")
	ErrEmailExists             = errors.New("email already registered")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUserNotFound            = errors.New("user not found")
	ErrProviderTokenInvalid    = errors.New("provider rejected the access token")
	ErrEmailPermissionRequired = errors.New("email permission is required")
	ErrInvalidIssuer           = errors.New("id token has an invalid issuer")
	ErrInvalidAudience         = errors.New("id token has an invalid audience")
	ErrTokenVerificationFailed = errors.New("id token verification failed")
	ErrUsernameExhausted       = errors.New("could not allocate a unique username")
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	FacebookLogin(ctx context.Context, input domain.FacebookLoginInput) (*domain.User, *domain.TokenPair, bool, error)
	GoogleLogin(ctx context.Context, input domain.GoogleLoginInput) (*domain.User, *domain.TokenPair, bool, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

type Claims struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// FacebookResolver turns a Facebook access token into a verified claim.
type FacebookResolver interface {
	Resolve(ctx context.Context, accessToken string) (*domain.Claim, error)
}

// GoogleResolver verifies a Google id_token and produces a claim.
type GoogleResolver interface {
	Resolve(ctx context.Context, accessToken, idToken string) (*domain.Claim, error)
}

type service struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	emailService email.Service
	facebook     FacebookResolver
	google       GoogleResolver
	cfg          *config.Config
	logger       *zap.Logger
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, emailService email.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		emailService: emailService,
		facebook:     NewFacebookResolver(cfg),
		google:       NewGoogleResolver(cfg),
		cfg:          cfg,
		logger:       logger,
	}
}

// SetResolvers swaps the provider resolvers; tests use this to stub the
// external calls.
func (s *service) SetResolvers(fb FacebookResolver, g GoogleResolver) {
	if fb != nil {
		s.facebook = fb
	}
	if g != nil {
		s.google = g
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	passwordHash := string(hashedPassword)

	lang := input.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	user := &domain.User{
		ID:                uuid.New(),
		Email:             input.Email,
		Username:          input.Username,
		PasswordHash:      &passwordHash,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Role:              domain.RolePatient,
		AuthProvider:      domain.ProviderLocal,
		PreferredLanguage: lang,
	}

	if err := s.createWithUniqueUsername(ctx, user, defaultProfile(user.ID)); err != nil {
		return nil, err
	}

	go func() {
		err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.FirstName)
		if err != nil {
			s.logger.Warn("failed to send welcome email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()

	return user, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	var user *domain.User
	var err error

	// An identifier with "@" and "." is treated as an email, anything else
	// as a username.
	if strings.Contains(input.Identifier, "@") && strings.Contains(input.Identifier, ".") {
		user, err = s.userRepo.GetByEmail(ctx, input.Identifier)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, input.Identifier)
	}
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

func (s *service) FacebookLogin(ctx context.Context, input domain.FacebookLoginInput) (*domain.User, *domain.TokenPair, bool, error) {
	claim, err := s.facebook.Resolve(ctx, input.AccessToken)
	if err != nil {
		return nil, nil, false, err
	}

	user, created, err := s.linkOrCreate(ctx, claim, domain.ProviderFacebook)
	if err != nil {
		return nil, nil, false, err
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, false, err
	}

	return user, tokens, created, nil
}

func (s *service) GoogleLogin(ctx context.Context, input domain.GoogleLoginInput) (*domain.User, *domain.TokenPair, bool, error) {
	claim, err := s.google.Resolve(ctx, input.AccessToken, input.IDToken)
	if err != nil {
		return nil, nil, false, err
	}

	user, created, err := s.linkOrCreate(ctx, claim, domain.ProviderGoogle)
	if err != nil {
		return nil, nil, false, err
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, false, err
	}

	return user, tokens, created, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, user)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	// Do not leak whether the email is registered.
	if user == nil || user.PasswordHash == nil {
		return nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(tokenBytes)

	if err := s.userRepo.SetPasswordResetToken(ctx, user.ID, resetToken, time.Now().Add(time.Hour)); err != nil {
		return err
	}

	go func() {
		err := s.emailService.SendPasswordResetEmail(context.Background(), user.Email, user.FirstName, resetToken)
		if err != nil {
			s.logger.Warn("failed to send password reset email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()

	return nil
}

func (s *service) generateTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessClaims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()
	refreshTokenHash := hashToken(refreshTokenRaw)

	session := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: refreshTokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
