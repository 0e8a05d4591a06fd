package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/pkg/password"
	"visitor-management/repository"
)

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	rt     Runtime
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, rt Runtime) *AuthService {
	return &AuthService{users: users, tokens: tokens, rt: rt.withDefaults()}
}

// Session is a freshly issued token and the user it belongs to.
type Session struct {
	Token string
	User  *models.User
}

// Register creates a visitor account. Self-registration never grants a staff role.
func (s *AuthService) Register(ctx context.Context, payload models.UserRegisterPayload) (*Session, error) {
	user := &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Company:  payload.Company,
		Role:     models.RoleVisitor,
		IsActive: true,
	}
	if err := s.create(ctx, user, payload.Password, s.users.CreateUser); err != nil {
		return nil, err
	}
	return s.session(user)
}

// SetupAdmin creates the first administrator. It refuses once any admin exists.
func (s *AuthService) SetupAdmin(ctx context.Context, payload models.SetupAdminPayload) (*Session, error) {
	user, err := s.EnsureAdmin(ctx, payload)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Duplicate("admin already exists in the system")
	}
	return s.session(user)
}

// EnsureAdmin creates an admin from payload when the system has none. It
// returns (nil, nil) when an admin already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, payload models.SetupAdminPayload) (*models.User, error) {
	count, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, apperror.Persistence("failed to check for existing admins", err)
	}
	if count > 0 {
		return nil, nil
	}

	user := &models.User{
		Name:       payload.Name,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Company:    payload.Company,
		Department: payload.Department,
		Role:       models.RoleAdmin,
		IsActive:   true,
	}
	created := false
	err = s.create(ctx, user, payload.Password, func(ctx context.Context, u *models.User) error {
		var err error
		created, err = s.users.CreateFirstAdmin(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	s.rt.Logger.Info("admin account created", "user_id", user.ID.Hex(), "email", user.Email)
	return user, nil
}

func (s *AuthService) create(ctx context.Context, user *models.User, plain string, insert func(context.Context, *models.User) error) error {
	hashed, err := password.HashPassword(plain)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}
	user.Password = hashed
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperror.Duplicate("email already registered")
		}
		return apperror.Persistence("failed to create user", err)
	}
	return nil
}

// Login checks credentials, refuses deactivated accounts and records the login time.
func (s *AuthService) Login(ctx context.Context, payload models.UserLoginPayload) (*Session, error) {
	user, err := s.users.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		return nil, apperror.Persistence("failed to load user", err)
	}
	if user == nil || !password.CheckPasswordHash(payload.Password, user.Password) {
		return nil, apperror.Unauthenticated("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}

	now := s.rt.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.rt.Logger.Warn("failed to record last login", "user_id", user.ID.Hex(), "error", err)
	} else {
		user.LastLogin = &now
	}

	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to create token", err)
	}
	return &Session{Token: token, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id primitive.ObjectID, payload models.UserUpdatePayload) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, payload)
	if err != nil {
		return nil, apperror.Persistence("failed to update profile", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id primitive.ObjectID, payload models.ChangePasswordPayload) error {
	user, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return apperror.Unauthenticated("old password does not match")
	}
	if payload.NewPassword == payload.OldPassword {
		return apperror.Validation("new password must differ from the old password")
	}

	hashed, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hashed); err != nil {
		return apperror.Persistence("failed to update password", err)
	}
	return nil
}
