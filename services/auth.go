package services

import (
	"context"
	"errors"
	"strings"

	"campy/logger"
	"campy/models"
	"campy/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "User with this email already exists"
)

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type AuthService struct {
	db       *gorm.DB
	tokens   *TokenManager
	hashCost int
	log      *logger.Logger
}

func NewAuthService(db *gorm.DB, tokens *TokenManager, hashCost int, log *logger.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, hashCost: hashCost, log: log}
}

// Tokens exposes the token manager for the HTTP auth middleware.
func (s *AuthService) Tokens() *TokenManager {
	return s.tokens
}

// Register creates an account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	user, err := createUser(ctx, s.db, s.hashCost, name, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "userId", user.ID)
	return &AuthResult{UserID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

// Authenticate verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAuthError(msgInvalidCredentials)
		}
		return nil, dbError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewAuthError(msgInvalidCredentials)
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

func createUser(ctx context.Context, db *gorm.DB, cost int, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, dbError(err)
	}
	if count > 0 {
		return nil, utils.NewConflictError(msgEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, writeError(err, msgEmailTaken)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
