package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jellydator/ttlcache/v3"

	"rentdesk/internal/auth"
	"rentdesk/internal/config"
	"rentdesk/internal/models"
	"rentdesk/internal/store"
	"rentdesk/internal/utils"
)

// ErrInvalidCredentials is returned on a failed login. Deliberately vague so
// callers cannot distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = fmt.Errorf("user already exists")

// IUserService defines the interface for account operations. Passwords are
// stored as bcrypt hashes only.
type IUserService interface {
	EnsureDefaultAdmin(ctx context.Context) error
	Register(ctx context.Context, user *models.User, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(token string)
	IsSessionActive(token string) bool
	FindUserByID(ctx context.Context, userID utils.SixID) (*models.User, bool, error)
	UpdateProfile(ctx context.Context, userID utils.SixID, updates map[string]interface{}) (*models.User, bool, error)
}

// userService implements IUserService.
type userService struct {
	users    *store.Collection[models.User, *models.User]
	cfg      *config.Config
	sessions *ttlcache.Cache[string, utils.SixID]
}

// NewUserService creates a new UserService with an in-process session cache.
func NewUserService(stores *store.Stores, cfg *config.Config) IUserService {
	sessions := ttlcache.New(
		ttlcache.WithTTL[string, utils.SixID](cfg.SessionCacheTTL),
	)
	go sessions.Start() // expired-entry eviction

	return &userService{
		users:    stores.Users,
		cfg:      cfg,
		sessions: sessions,
	}
}

// EnsureDefaultAdmin seeds the configured admin account when the user
// collection is empty, so a fresh installation is immediately usable.
func (s *userService) EnsureDefaultAdmin(ctx context.Context) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(s.cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        s.cfg.DefaultAdminEmail,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	log.Printf("Seeded default admin account %s", admin.Email)
	return nil
}

// Register creates a new regular account and returns a session token. The
// email must not already have an account.
func (s *userService) Register(ctx context.Context, user *models.User, password string) (string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, user.Email) {
			return "", ErrEmailTaken
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	user.Role = models.RoleUser

	if err := s.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.openSession(user)
}

// Login verifies credentials and returns a session token plus a sanitized
// copy of the account.
func (s *userService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", nil, err
	}

	for i := range users {
		u := &users[i]
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if !auth.CheckPasswordHash(password, u.PasswordHash) {
			return "", nil, ErrInvalidCredentials
		}
		token, err := s.openSession(u)
		if err != nil {
			return "", nil, err
		}
		sanitized := u.Sanitized()
		return token, &sanitized, nil
	}

	return "", nil, ErrInvalidCredentials
}

func (s *userService) openSession(user *models.User) (string, error) {
	token, err := auth.GenerateJWT(user.ID, user.IsAdmin(), s.cfg.JwtSecret, s.cfg.JwtTTL)
	if err != nil {
		return "", err
	}
	s.sessions.Set(token, user.ID, ttlcache.DefaultTTL)
	return token, nil
}

// Logout drops the session so the token stops working before its JWT expiry.
func (s *userService) Logout(token string) {
	s.sessions.Delete(token)
}

// IsSessionActive reports whether the token belongs to a live session.
func (s *userService) IsSessionActive(token string) bool {
	return s.sessions.Get(token) != nil
}

// FindUserByID returns a user by id; absence is not an error.
func (s *userService) FindUserByID(ctx context.Context, userID utils.SixID) (*models.User, bool, error) {
	return s.users.Get(ctx, userID)
}

// UpdateProfile shallow-merges the given fields into the account. The
// password hash, email and role cannot be changed here. An unknown id is a
// silent no-op.
func (s *userService) UpdateProfile(ctx context.Context, userID utils.SixID, updates map[string]interface{}) (*models.User, bool, error) {
	delete(updates, "password")
	delete(updates, "email")
	delete(updates, "role")

	updated, found, err := s.users.Update(ctx, userID, updates)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update profile for user %s: %w", userID.String(), err)
	}
	if updated != nil {
		sanitized := updated.Sanitized()
		updated = &sanitized
	}
	return updated, found, nil
}
