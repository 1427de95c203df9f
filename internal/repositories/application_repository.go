package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gigboard-dev/gigboard/internal/models"
	"github.com/gigboard-dev/gigboard/internal/services"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create relies on the (user_id, gig_id) unique index: the loser of a racing
// duplicate gets ErrConflict from the store rather than a second row.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	err := r.db.WithContext(ctx).Create(app).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: already applied to gig %d", services.ErrConflict, app.GigID)
	}

	return err
}

func (r *ApplicationRepository) Exists(ctx context.Context, userID, gigID uint) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ? AND gig_id = ?", userID, gigID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
