package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVisitor      Role = "visitor"
	RoleReceptionist Role = "receptionist"
	RoleGuard        Role = "guard"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVisitor, RoleReceptionist, RoleGuard:
		return true
	}
	return false
}

// IsStaff reports whether the role works the front desk (anyone but a visitor).
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleReceptionist || r == RoleGuard
}

type User struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Company    string             `json:"company,omitempty" bson:"company,omitempty"`
	Role       Role               `json:"role" bson:"role"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	Photo      string             `json:"photo,omitempty" bson:"photo,omitempty"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	LastLogin  *time.Time         `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserView is what the API returns for a user: the account plus its derived permissions.
type UserView struct {
	User
	Permissions []Permission `json:"permissions"`
}

func NewUserView(u *User) UserView {
	return UserView{User: *u, Permissions: PermissionsFor(u.Role)}
}

type UserRegisterPayload struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Company  string `json:"company" validate:"omitempty,max=100"`
}

type SetupAdminPayload struct {
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Company    string `json:"company" validate:"omitempty,max=100"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdatePayload struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company    string `json:"company,omitempty" validate:"omitempty,max=100"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type UpdateRolePayload struct {
	Role       Role   `json:"role" validate:"required,oneof=admin visitor receptionist guard"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100"`
}

type UpdateActivePayload struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Claims is the authenticated caller, as decoded from the bearer token.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Role   Role               `json:"role"`
}
