package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gigboard-dev/gigboard/internal/models"
	"github.com/gigboard-dev/gigboard/internal/services"
)

type GigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) *GigRepository {
	return &GigRepository{db: db}
}

func (r *GigRepository) Create(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Create(gig).Error
}

func (r *GigRepository) FindByID(ctx context.Context, id uint) (*models.Gig, error) {
	var gig models.Gig

	err := r.db.WithContext(ctx).First(&gig, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: gig %d", services.ErrNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	return &gig, nil
}

func (r *GigRepository) ListAll(ctx context.Context) ([]models.Gig, error) {
	var gigs []models.Gig

	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&gigs).Error; err != nil {
		return nil, err
	}

	return gigs, nil
}

func (r *GigRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Gig, error) {
	var gigs []models.Gig

	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&gigs).Error; err != nil {
		return nil, err
	}

	return gigs, nil
}

func (r *GigRepository) ListByAssignee(ctx context.Context, workerID uint) ([]models.Gig, error) {
	var gigs []models.Gig

	if err := r.db.WithContext(ctx).Where("assigned_to = ?", workerID).Order("assigned_at DESC").Find(&gigs).Error; err != nil {
		return nil, err
	}

	return gigs, nil
}

// CompletePayment is a single conditional write: the guard on payment_status
// keeps the pending -> completed transition one-way even under concurrent
// confirmations.
func (r *GigRepository) CompletePayment(ctx context.Context, gigID uint, paymentRef string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ? AND payment_status = ?", gigID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusCompleted,
			"payment_ref":    paymentRef,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Assign is a single conditional write guarded on the gig still being open
// with payment completed; two racing assignments cannot both land.
func (r *GigRepository) Assign(ctx context.Context, gigID, workerID uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Gig{}).
		Where("id = ? AND status = ? AND payment_status = ?", gigID, models.GigStatusOpen, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"status":      models.GigStatusAssigned,
			"assigned_to": workerID,
			"assigned_at": at,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
