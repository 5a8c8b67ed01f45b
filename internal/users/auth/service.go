// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// TokenProvider issues access tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// errInvalidCredentials is shared by every login failure so that callers
// cannot tell unknown accounts from wrong passwords.
var errInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

type Service struct {
	users  UserRepository
	tokens TokenProvider
	logger *slog.Logger
}

func NewService(users UserRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Register creates a member account.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, minUsernameLength).
		MaxLen(FieldUsername, input.Username, maxUsernameLength)
	validator.Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, maxEmailLength).
		Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, minPasswordLength).
		Custom(FieldPassword, len(input.Password) > maxPasswordLength, fmt.Sprintf("Maximum %d bytes", maxPasswordLength))
	validator.MaxLen(FieldDisplayName, input.DisplayName, maxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	usernameTaken, emailTaken, err := service.users.Exists(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperr.Conflict("Email is already registered")
	}
	if usernameTaken {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         sec.RoleMember,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// LoginInput holds credentials. Login is a username or an email.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResult is a freshly issued access token and its owner.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

// Login verifies credentials and issues an access token.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		return nil, validate.RequiredError(FieldLogin, "Login and password are required")
	}

	user, err := service.users.FindByLogin(ctx, login)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("user_id", user.ID))
		return nil, errInvalidCredentials
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_token_generation_failed: %w", err))
	}

	if err := service.users.TouchLastLogin(ctx, user.ID); err != nil {
		service.logger.Warn("last_login_update_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// Me returns the caller's account.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (service *Service) DeleteUser(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if err := service.users.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("user_deleted", slog.String("user_id", id), slog.String("deleted_by", callerID))
	return nil
}
