// internal/domain/models/payment.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment is recorded after the client confirms a payment intent.
// ClassIDs is caller-supplied; nothing links it back to selections.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	TransactionID string             `bson:"transactionId" json:"transactionId" validate:"required"`
	Amount        float64            `bson:"amount" json:"amount" validate:"gte=0"`
	Date          string             `bson:"date,omitempty" json:"date,omitempty"`
	ClassIDs      []string           `bson:"classIds,omitempty" json:"classIds,omitempty"`
	ClassName     string             `bson:"className,omitempty" json:"className,omitempty"`
}

// IntentRequest is the body of the create-payment-intent route. Price is
// coerced from either a JSON number or a numeric string.
type IntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=999999.99"`
}
