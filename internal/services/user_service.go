package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"procurement-service/internal/domain"
	"procurement-service/internal/infra"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository"

	"github.com/pkg/errors"
)

type UserService struct {
	users  repository.UserRepository
	hasher infra.PasswordHasher
	tokens infra.TokenService
	authz  policy.Authorizer
	events *Events
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(
	users repository.UserRepository,
	hasher infra.PasswordHasher,
	tokens infra.TokenService,
	authz policy.Authorizer,
	events *Events,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		authz:  authz,
		events: events,
		logger: logger,
	}
}

type RegisterInput struct {
	Name     string      `json:"name" validate:"required,max=255"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,max=72"`
	Role     domain.Role `json:"role" validate:"required,oneof=Admin Vendor Employee"`
}

// Register creates an account. Vendors start Pending until an admin approves
// them; every other role is Approved immediately.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role == domain.RoleAdmin {
		if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionRegisterAdmin}); err != nil {
			return nil, err
		}
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, storeError(err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.ErrStore.Wrap(err)
	}

	u := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       in.Role.InitialStatus(),
	}
	// The unique index still catches a concurrent registration of the same email.
	if err := s.users.Create(ctx, u); err != nil {
		return nil, storeError(err)
	}

	s.events.dispatch(domain.EventUserRegistered, userEvent(u))
	s.logger.InfoContext(ctx, "user registered",
		slog.Uint64("userId", u.ID),
		slog.String("role", string(u.Role)),
		slog.String("status", string(u.Status)),
	)
	return u, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	UserID uint64      `json:"userId"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	Token  string      `json:"token"`
}

// Login checks credentials and issues an access token. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, storeError(err)
	}
	if u == nil {
		s.hasher.Check(in.Password, s.dummyPasswordHash())
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Check(in.Password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if u.Status != domain.UserApproved {
		return nil, domain.ErrNotApproved
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, domain.ErrStore.Wrap(err)
	}

	return &LoginResult{UserID: u.ID, Name: u.Name, Role: u.Role, Token: token}, nil
}

// dummyPasswordHash gives Login something to compare against when the email
// is unknown, so both failure paths cost one bcrypt comparison.
func (s *UserService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("procurement-service-dummy")
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", slog.String("error", err.Error()))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Approve marks a user as Approved. Approving an approved user is a no-op
// success.
func (s *UserService) Approve(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return domain.ErrValidation
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionApproveUser}); err != nil {
		return err
	}

	ok, err := s.users.SetStatus(ctx, userID, domain.UserApproved)
	if err != nil {
		return storeError(err)
	}
	if !ok {
		return domain.ErrUserNotFound
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "approved user could not be reloaded", slog.Uint64("userId", userID), slog.String("error", err.Error()))
		return nil
	}
	if u != nil {
		s.events.dispatch(domain.EventUserApproved, userEvent(u))
	}

	s.logger.InfoContext(ctx, "user approved", slog.Uint64("userId", userID))
	return nil
}

func (s *UserService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionApproveUser}); err != nil {
		return nil, err
	}
	users, err := s.users.ListByStatus(ctx, domain.UserPending)
	if err != nil {
		return nil, storeError(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionListUsers}); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// EnsureAdmin creates the bootstrap admin account when no user with that
// email exists yet. It bypasses the authorizer.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return errors.Wrap(err, "look up admin")
	}
	if existing != nil {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}
	if name == "" {
		name = "Admin"
	}

	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.UserApproved,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return errors.Wrap(err, "create admin")
	}

	s.logger.InfoContext(ctx, "default admin created", slog.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userEvent(u *domain.User) domain.UserEvent {
	return domain.UserEvent{UserID: u.ID, Email: u.Email, Role: u.Role, Status: u.Status}
}
