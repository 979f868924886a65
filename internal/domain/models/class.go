// internal/domain/models/class.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Class status values. The capitalized forms are what the admin
// approve/deny routes write.
const (
	ClassPending  = "pending"
	ClassApproved = "Approve"
	ClassDenied   = "Deny"
)

// Class is an instructor-submitted course offering.
type Class struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title           string             `bson:"title" json:"title" validate:"required,max=300"`
	InstructorName  string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	InstructorEmail string             `bson:"instructorEmail" json:"instructorEmail" validate:"required,email"`
	Price           float64            `bson:"price,omitempty" json:"price,omitempty" validate:"gte=0"`
	AvailableSeats  float64            `bson:"availableSeats,omitempty" json:"availableSeats,omitempty" validate:"gte=0"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Status          string             `bson:"status" json:"status" validate:"omitempty,oneof=pending Approve Deny"`
	Feedback        string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// ClassFeedback is the body of the feedback-attach route.
type ClassFeedback struct {
	Feedback string `json:"feedback" validate:"required,max=5000"`
}
