package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"clearcause/internal/domain"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// compareHash is swapped in tests to count comparisons.
var compareHash = bcrypt.CompareHashAndPassword

// unknownUserHash is compared against when the email has no account so a
// miss costs the same bcrypt work as a wrong password.
var unknownUserHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("clearcause-unknown-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, time.Time, error)
}

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	FullName string          `json:"fullName"`
	Role     domain.UserRole `json:"role"`
}

// UserService handles accounts and authentication.
type UserService struct {
	Base
	users  domain.UserRepository
	tokens TokenIssuer
}

func NewUserService(users domain.UserRepository, tokens TokenIssuer, base Base) *UserService {
	return &UserService{Base: base, users: users, tokens: tokens}
}

// SignUp creates a donor or charity account and signs the user in.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	in.Email = strings.ToLower(trim(in.Email))
	in.FullName = trim(in.FullName)
	if in.Role == "" {
		in.Role = domain.UserRoleDonor
	}
	if in.Role != domain.UserRoleDonor && in.Role != domain.UserRoleCharity {
		return nil, domain.Validation("role must be donor or charity")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.Validation("email is invalid")
	}
	if len(in.Password) < minPasswordLength || len(in.Password) > maxPasswordLength {
		return nil, domain.Validation("password must be %d to %d characters", minPasswordLength, maxPasswordLength)
	}
	if in.FullName == "" {
		return nil, domain.Validation("fullName is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal(err)
	}
	user := &domain.User{Email: in.Email, FullName: in.FullName, Role: in.Role, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(err, "email is already registered")
		}
		return nil, err
	}
	s.audit(ctx, domain.Actor{UserID: user.ID, Role: user.Role}, "user.signed_up", "user", user.ID, map[string]any{"role": user.Role})
	return s.issue(user)
}

// SignIn checks credentials and returns a fresh token.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	invalid := domain.Unauthorized("invalid email or password")
	user, err := s.users.GetByEmail(ctx, strings.ToLower(trim(email)))
	if errors.Is(err, domain.ErrNotFound) {
		_ = compareHash(unknownUserHash(), []byte(password))
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if compareHash([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, invalid
	}
	if !user.IsActive {
		return nil, domain.Forbidden("account is disabled")
	}
	return s.issue(user)
}

func (s *UserService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "user")
	}
	return user, nil
}

// UpdateProfile changes name and avatar. Empty values are left unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, fullName, avatarURL string) (*domain.User, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	fullName, avatarURL = trim(fullName), trim(avatarURL)
	if len(fullName) > 200 {
		return nil, domain.Validation("fullName is too long")
	}
	if err := validateURL("avatarUrl", avatarURL); err != nil {
		return nil, err
	}
	user, err := s.users.UpdateProfile(ctx, actor.UserID, fullName, avatarURL)
	if err != nil {
		return nil, lookup(err, "user")
	}
	return user, nil
}

// List returns accounts for admins.
func (s *UserService) List(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.Validation("unknown role %q", filter.Role)
	}
	return s.users.List(ctx, filter)
}

// SetRole changes another user's role.
func (s *UserService) SetRole(ctx context.Context, actor domain.Actor, userID string, role domain.UserRole) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.Validation("unknown role %q", role)
	}
	if userID == actor.UserID {
		return domain.Forbidden("admins cannot change their own role")
	}
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return lookup(err, "user")
	}
	s.audit(ctx, actor, "user.role_changed", "user", userID, map[string]any{"role": role})
	return nil
}

// SetActive enables or disables another user's account.
func (s *UserService) SetActive(ctx context.Context, actor domain.Actor, userID string, active bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if userID == actor.UserID {
		return domain.Forbidden("admins cannot disable themselves")
	}
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return lookup(err, "user")
	}
	s.audit(ctx, actor, "user.active_changed", "user", userID, map[string]any{"active": active})
	return nil
}
