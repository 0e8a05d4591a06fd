package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
	"visitor-management/pkg/photostore"
	"visitor-management/repository"
)

type UserService struct {
	users  repository.UserRepository
	photos *photostore.Store
	rt     Runtime
}

func NewUserService(users repository.UserRepository, photos *photostore.Store, rt Runtime) *UserService {
	return &UserService{users: users, photos: photos, rt: rt.withDefaults()}
}

func (s *UserService) List(ctx context.Context, role models.Role) ([]models.UserView, error) {
	if role != "" && !role.Valid() {
		return nil, apperror.Validation("unknown role")
	}
	users, err := s.users.GetAllUsers(ctx, role)
	if err != nil {
		return nil, apperror.Persistence("failed to load users", err)
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, models.NewUserView(&users[i]))
	}
	return views, nil
}

func (s *UserService) UpdateRole(ctx context.Context, actor *models.Claims, id primitive.ObjectID, payload models.UpdateRolePayload) (*models.User, error) {
	if !payload.Role.Valid() {
		return nil, apperror.Validation("unknown role")
	}
	if actor.UserID == id && payload.Role != models.RoleAdmin {
		return nil, apperror.Forbidden("admins cannot demote themselves")
	}

	found, err := s.users.UpdateRole(ctx, id, payload.Role, payload.Department)
	if err != nil {
		return nil, apperror.Persistence("failed to update role", err)
	}
	if !found {
		return nil, apperror.NotFound("user not found")
	}
	s.rt.Logger.Info("user role changed", "user_id", id.Hex(), "role", payload.Role, "by", actor.UserID.Hex())
	return s.load(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, actor *models.Claims, id primitive.ObjectID, active bool) (*models.User, error) {
	if actor.UserID == id && !active {
		return nil, apperror.Forbidden("admins cannot deactivate themselves")
	}

	found, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, apperror.Persistence("failed to update account", err)
	}
	if !found {
		return nil, apperror.NotFound("user not found")
	}
	s.rt.Logger.Info("user active flag changed", "user_id", id.Hex(), "is_active", active, "by", actor.UserID.Hex())
	return s.load(ctx, id)
}

func (s *UserService) load(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

// UploadPhoto stores a new profile photo and removes the one it replaces.
func (s *UserService) UploadPhoto(ctx context.Context, actor *models.Claims, filename string, r io.Reader) (string, error) {
	user, err := s.load(ctx, actor.UserID)
	if err != nil {
		return "", err
	}

	name, err := s.photos.Save(actor.UserID.Hex(), filename, r)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdatePhoto(ctx, actor.UserID, name); err != nil {
		_ = s.photos.Remove(name)
		return "", apperror.Persistence("failed to save photo", err)
	}

	if user.Photo != "" && user.Photo != name {
		if err := s.photos.Remove(user.Photo); err != nil {
			s.rt.Logger.Warn("failed to remove previous photo", "user_id", user.ID.Hex(), "photo", user.Photo, "error", err)
		}
	}
	return name, nil
}

// PhotoPath returns the file of a user's photo. Visitors may only read their own.
func (s *UserService) PhotoPath(ctx context.Context, actor *models.Claims, id primitive.ObjectID) (string, error) {
	if actor.UserID != id && !actor.Role.IsStaff() {
		return "", apperror.Forbidden("you can only view your own photo")
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if user.Photo == "" {
		return "", apperror.NotFound("photo not found")
	}
	return s.photos.Path(user.Photo)
}
