// Package repository persists users, visits and pre-approvals.
//
// Finders return (nil, nil) when nothing matches. Transition methods apply a
// status change only if the stored status is a permitted predecessor, as one
// atomic operation; they return (nil, nil) when the guard does not match.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"visitor-management/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	// CreateFirstAdmin stores user only while the system has never had an
	// admin. Concurrent callers see exactly one true.
	CreateFirstAdmin(ctx context.Context, user *models.User) (bool, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetAllUsers(ctx context.Context, role models.Role) ([]models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role, department string) (bool, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, payload models.UserUpdatePayload) (*models.User, error)
	UpdatePhoto(ctx context.Context, id primitive.ObjectID, photo string) error
}

type VisitRepository interface {
	Create(ctx context.Context, visit *models.Visit) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Visit, error)
	// FindRedeemable returns the earliest approved visit with this passcode
	// scheduled at or after notBefore.
	FindRedeemable(ctx context.Context, passcode string, notBefore time.Time) (*models.Visit, error)
	FindByVisitor(ctx context.Context, visitorID primitive.ObjectID) ([]models.Visit, error)
	List(ctx context.Context, filter models.VisitFilter) ([]models.VisitWithVisitor, error)
	Transition(ctx context.Context, id primitive.ObjectID, t models.VisitTransition) (*models.Visit, error)
	Stats(ctx context.Context, dayStart, dayEnd time.Time) (*models.VisitStats, error)
}

type PreApprovalRepository interface {
	Create(ctx context.Context, p *models.PreApproval) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PreApproval, error)
	// FindActiveByPasscode returns every active pre-approval carrying the
	// passcode, oldest validity window first.
	FindActiveByPasscode(ctx context.Context, passcode string) ([]models.PreApproval, error)
	List(ctx context.Context) ([]models.PreApproval, error)
	Transition(ctx context.Context, id primitive.ObjectID, t models.PreApprovalTransition) (*models.PreApproval, error)
	AttachVisit(ctx context.Context, id, visitID primitive.ObjectID) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
