// Package auth issues bearer tokens and handles registration and login.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"medistore/internal/apperr"
	"medistore/internal/models"
)

const minPasswordLen = 6

// loginFailed is shared by the unknown-email and wrong-password paths so the
// response does not reveal which check failed.
const loginFailed = "Invalid email or password"

// Service registers users and logs them in against the users table.
type Service struct {
	db       *gorm.DB
	tokens   *Tokens
	validate *validator.Validate
}

// NewService wires the user store and token issuer.
func NewService(db *gorm.DB, tokens *Tokens) *Service {
	return &Service{db: db, tokens: tokens, validate: validator.New()}
}

// RegisterInput is the registration form. Role is optional.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     models.Role
}

// Session is returned by Register and Login.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a CUSTOMER or SELLER account and returns it with a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, apperr.New(apperr.Validation, "Email, password, and name are required")
	}
	if s.validate.Var(email, "email") != nil {
		return nil, apperr.New(apperr.Validation, "Invalid email format")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.New(apperr.Validation, "Password must be at least %d characters long", minPasswordLen)
	}
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleSeller {
		return nil, apperr.New(apperr.Validation, "Invalid role. Must be CUSTOMER or SELLER")
	}

	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return nil, apperr.Wrap(err, "Registration failed")
	}
	if cnt > 0 {
		return nil, apperr.New(apperr.Conflict, "User already exists with this email")
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(err, "Registration failed")
	}
	u := models.User{Email: email, PasswordHash: hash, Name: name, Role: role, Status: models.StatusActive}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "User already exists with this email")
		}
		return nil, apperr.Wrap(err, "Registration failed")
	}
	return s.session(&u)
}

// Login checks the password against the stored hash.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "Email and password are required")
	}
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.Unauthenticated, loginFailed)
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Login failed")
	}
	if !models.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthenticated, loginFailed)
	}
	return s.session(&u)
}

// Me loads the caller's own record.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to fetch user")
	}
	return &u, nil
}

func (s *Service) session(u *models.User) (*Session, error) {
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Wrap(err, "Failed to issue token")
	}
	return &Session{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
