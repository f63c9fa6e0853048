package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"feedback-backend/internal/domain"
	"feedback-backend/internal/middleware"
	"feedback-backend/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return middleware.BadRequest("Email and password are required")
	}

	_, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully!",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Identifier == "" || input.Password == "" {
		return middleware.BadRequest("Both username/email and password are required")
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email/username or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
		"email":         user.Email,
		"role":          user.Role,
		"username":      user.Username,
	})
}

func (h *AuthHandler) FacebookLogin(c *fiber.Ctx) error {
	var input domain.FacebookLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.AccessToken == "" {
		return middleware.BadRequest("access_token is required")
	}

	user, tokens, isNew, err := h.authService.FacebookLogin(c.Context(), input)
	if err != nil {
		return socialLoginError(err)
	}

	return socialLoginResponse(c, user, tokens, isNew)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var input domain.GoogleLoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.IDToken == "" {
		return middleware.BadRequest("id_token is required")
	}

	user, tokens, isNew, err := h.authService.GoogleLogin(c.Context(), input)
	if err != nil {
		return socialLoginError(err)
	}

	return socialLoginResponse(c, user, tokens, isNew)
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return middleware.Unauthorized("Invalid refresh token")
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			return middleware.Unauthorized("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Email == "" {
		return middleware.BadRequest("Email is required")
	}

	if err := h.authService.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If the email exists, a reset link has been sent",
	})
}

func socialLoginError(err error) error {
	switch {
	case errors.Is(err, auth.ErrProviderTokenInvalid),
		errors.Is(err, auth.ErrTokenVerificationFailed),
		errors.Is(err, auth.ErrInvalidIssuer),
		errors.Is(err, auth.ErrInvalidAudience):
		return middleware.Unauthorized(err.Error())
	case errors.Is(err, auth.ErrEmailPermissionRequired):
		return middleware.BadRequest(err.Error())
	default:
		return err
	}
}

func socialLoginResponse(c *fiber.Ctx, user *domain.User, tokens *domain.TokenPair, isNew bool) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
		"is_new_user":   isNew,
	})
}
