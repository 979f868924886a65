// internal/domain/models/user.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role values stored on users. An empty role is treated as RoleUndefined.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
	RoleUndefined  = "undefined"
)

// User is a platform account created on signup.
//
// NOTE:
//   - Email is not unique; lookups by email return the first match.
//   - Role is overwritten in place by the role-update routes.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty" validate:"max=200"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=student instructor admin undefined"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty" validate:"omitempty,url"`
}
