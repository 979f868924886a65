package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test documents directly, bypassing handlers and stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateUser inserts a user with the given role ("" leaves it unset).
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()
	u := models.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateAdmin inserts an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Admin", email, models.RoleAdmin)
}

// CreateStudent inserts a student user.
func (f *Fixtures) CreateStudent(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Student", email, models.RoleStudent)
}

// CreateClass inserts a class in the given status.
func (f *Fixtures) CreateClass(ctx context.Context, title, instructorEmail, status string) models.Class {
	f.t.Helper()
	c := models.Class{
		ID:              primitive.NewObjectID(),
		Title:           title,
		InstructorName:  "Test Instructor",
		InstructorEmail: instructorEmail,
		Price:           20,
		AvailableSeats:  10,
		Status:          status,
	}
	f.insert(ctx, "classes", c)
	return c
}

// CreateSelection inserts a selectedClasses record.
func (f *Fixtures) CreateSelection(ctx context.Context, classID primitive.ObjectID, studentEmail string) models.SelectedClass {
	f.t.Helper()
	s := models.SelectedClass{
		ID:           primitive.NewObjectID(),
		ClassID:      classID.Hex(),
		StudentEmail: studentEmail,
		Title:        "Selected Class",
		Price:        20,
	}
	f.insert(ctx, "selectedClasses", s)
	return s
}

// CreatePayment inserts a payment record.
func (f *Fixtures) CreatePayment(ctx context.Context, email, transactionID string, amount float64, date string) models.Payment {
	f.t.Helper()
	p := models.Payment{
		ID:            primitive.NewObjectID(),
		Email:         email,
		TransactionID: transactionID,
		Amount:        amount,
		Date:          date,
	}
	f.insert(ctx, "payments", p)
	return p
}
