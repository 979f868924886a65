// internal/app/features/users/handler.go
package users

import (
	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler serves the user account routes: signup, listing, lookup by
// email, role changes and deletion.
type Handler struct {
	Users  *userstore.Store
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		ErrLog: errLog,
		Log:    logger,
	}
}
