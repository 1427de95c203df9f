package services

import (
	"context"
	"time"

	"github.com/gigboard-dev/gigboard/internal/models"
)

// Store interfaces consumed by the services. The gorm implementations live in
// internal/repositories; tests substitute in-memory fakes.

type UserStore interface {
	// Create persists a new user, returning ErrConflict when the email is taken.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// FindByEmail returns ErrNotFound for unknown emails.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type GigStore interface {
	Create(ctx context.Context, gig *models.Gig) error
	FindByID(ctx context.Context, id uint) (*models.Gig, error)
	ListAll(ctx context.Context) ([]models.Gig, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Gig, error)
	ListByAssignee(ctx context.Context, workerID uint) ([]models.Gig, error)

	// CompletePayment transitions paymentStatus pending -> completed in a
	// single conditional write. applied is false when the gig was not in
	// the pending state, which callers treat as an idempotent no-op.
	CompletePayment(ctx context.Context, gigID uint, paymentRef string) (applied bool, err error)

	// Assign transitions status open -> assigned in a single conditional
	// write guarded on the gig still being open with payment completed.
	// applied is false when the guard did not hold.
	Assign(ctx context.Context, gigID, workerID uint, at time.Time) (applied bool, err error)
}

type ApplicationStore interface {
	// Create persists an application, returning ErrConflict when the
	// (applicant, gig) pair already exists.
	Create(ctx context.Context, app *models.Application) error
	Exists(ctx context.Context, userID, gigID uint) (bool, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
}
