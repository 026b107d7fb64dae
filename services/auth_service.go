package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chickenmaster-api/models"
	"chickenmaster-api/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

// LoginResponse bundles the sanitized user with their session.
type LoginResponse struct {
	User    models.AdminUserView `json:"user"`
	Session models.AdminSession  `json:"session"`
}

// SessionInfo is the result of a session check.
type SessionInfo struct {
	Valid  bool                  `json:"valid"`
	Reason string                `json:"reason,omitempty"`
	User   *models.AdminUserView `json:"user,omitempty"`
}

// AuthService handles dashboard login and session validation against the
// flat-file admin user store.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*LoginResponse, *ServiceError)
	CheckSession(ctx context.Context, token string) (*SessionInfo, *ServiceError)
	GetUser(ctx context.Context, id string) (*models.AdminUserView, *ServiceError)
}

type authServiceImpl struct {
	users  repository.AdminUserRepository
	secret []byte
	logger *zap.Logger
}

// NewAuthService creates a new AuthService signing sessions with secret.
func NewAuthService(users repository.AdminUserRepository, secret string, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, secret: []byte(secret), logger: logger}
}

// Login checks credentials against the admin user file and returns the user
// plus a signed 24h session. The same message covers unknown emails, inactive
// accounts and wrong passwords.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 401, Message: "Email or password incorrect"}
		}
		s.logger.Error("Failed to load admin user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Login failed"}
	}

	if !user.IsActive || user.Password != req.Password {
		return nil, &ServiceError{StatusCode: 401, Message: "Email or password incorrect"}
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		// Login still succeeds; last_login is informational.
		s.logger.Warn("Failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	token, err := s.signSession(user, now)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Login failed"}
	}

	s.logger.Info("Admin login",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		User: user.Public(),
		Session: models.AdminSession{
			UserID:     user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Role:       user.Role,
			LoggedInAt: now,
			Token:      token,
		},
	}, nil
}

func (s *authServiceImpl) signSession(user *models.AdminUser, at time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"typ":   "admin_session",
		"iat":   at.Unix(),
		"exp":   at.Add(sessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// CheckSession validates a session token and confirms the user still exists
// and is active. An invalid session is not an error: the response carries the
// reason.
func (s *authServiceImpl) CheckSession(ctx context.Context, token string) (*SessionInfo, *ServiceError) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return &SessionInfo{Valid: false, Reason: "Session expired"}, nil
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return &SessionInfo{Valid: false, Reason: "Invalid session"}, nil
	}
	if typ, _ := claims["typ"].(string); typ != "admin_session" {
		return &SessionInfo{Valid: false, Reason: "Invalid session"}, nil
	}

	userID, _ := claims["sub"].(string)
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return &SessionInfo{Valid: false, Reason: "User not found or inactive"}, nil
	}

	view := user.Public()
	return &SessionInfo{Valid: true, User: &view}, nil
}

// GetUser returns a sanitized admin user by id.
func (s *authServiceImpl) GetUser(ctx context.Context, id string) (*models.AdminUserView, *ServiceError) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to get admin user", zap.String("user_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get user"}
	}
	view := user.Public()
	return &view, nil
}
