// internal/app/features/classes/handler.go
package classes

import (
	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	"go.uber.org/zap"
)

// Handler serves class submission, the approval workflow and admin
// feedback.
type Handler struct {
	Classes *classstore.Store
	ErrLog  *apierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(classes *classstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Classes: classes,
		ErrLog:  errLog,
		Log:     logger,
	}
}
