package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"visitor-management/config"
	"visitor-management/models"
)

// adminSetupKey marks, in the system collection, that the first admin was created.
const adminSetupKey = "admin_setup"

type userRepository struct {
	collection *mongo.Collection
	system     *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection(config.UserCollection),
		system:     db.Collection(config.SystemCollection),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateFirstAdmin claims the admin_setup marker before inserting, so of two
// concurrent setups only the one whose marker insert succeeds creates a user.
func (r *userRepository) CreateFirstAdmin(ctx context.Context, user *models.User) (bool, error) {
	count, err := r.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = r.system.InsertOne(ctx, bson.M{"_id": adminSetupKey, "created_at": time.Now()})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to claim admin setup: %w", err)
	}

	if err := r.CreateUser(ctx, user); err != nil {
		if _, delErr := r.system.DeleteOne(ctx, bson.M{"_id": adminSetupKey}); delErr != nil {
			return false, fmt.Errorf("%w (and failed to release admin setup: %v)", err, delErr)
		}
		return false, err
	}
	return true, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *userRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role, department string) (bool, error) {
	set := bson.M{"role": role, "updated_at": time.Now()}
	if department != "" {
		set["department"] = department
	}
	return r.updateOne(ctx, id, set)
}

func (r *userRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error) {
	return r.updateOne(ctx, id, bson.M{"is_active": active, "updated_at": time.Now()})
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.updateOne(ctx, id, bson.M{"last_login": at})
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	_, err := r.updateOne(ctx, id, bson.M{"password": hashedPassword, "updated_at": time.Now()})
	return err
}

func (r *userRepository) UpdatePhoto(ctx context.Context, id primitive.ObjectID, photo string) error {
	_, err := r.updateOne(ctx, id, bson.M{"photo": photo, "updated_at": time.Now()})
	return err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, payload models.UserUpdatePayload) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if payload.Name != "" {
		set["name"] = payload.Name
	}
	if payload.Phone != "" {
		set["phone"] = payload.Phone
	}
	if payload.Company != "" {
		set["company"] = payload.Company
	}
	if payload.Department != "" {
		set["department"] = payload.Department
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return &user, nil
}

func (r *userRepository) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return result.MatchedCount > 0, nil
}
