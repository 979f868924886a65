// internal/domain/models/selection.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SelectedClass records a student's intent to enroll in a class
// (their cart). It is independent of any payment.
type SelectedClass struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ClassID      string             `bson:"classId" json:"classId" validate:"required"`
	StudentEmail string             `bson:"studentEmail" json:"studentEmail" validate:"required,email"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	Price        float64            `bson:"price,omitempty" json:"price,omitempty" validate:"gte=0"`
}
