package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/userdesk/userdesk-backend/pkg/db"
	"github.com/userdesk/userdesk-backend/pkg/db/models"
)

// Repository exposes user persistence operations over the shared DB client.
type Repository struct {
	client *db.Client
}

// NewRepository constructs a users repo bound to the provided DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// FindByID loads a user by primary key regardless of its deleted flag.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.client.DB().WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email. Deleted records
// are included: email uniqueness is store-wide.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.client.DB().WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns the persisted row.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.client.DB().WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFields applies a partial column update and returns the reloaded row.
// GORM bumps updated_at alongside the supplied columns.
func (r *Repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	tx := r.client.DB().WithContext(ctx)
	if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetDeleted flips the soft-delete flag and returns the reloaded row.
func (r *Repository) SetDeleted(ctx context.Context, id uint, deleted bool) (*models.User, error) {
	return r.UpdateFields(ctx, id, map[string]any{"is_deleted": deleted})
}

// ListWithCount runs the filtered page query and the matching total count
// inside one transaction so both values come from a single snapshot where the
// store supports it.
func (r *Repository) ListWithCount(ctx context.Context, filter ListFilter) ([]models.User, int64, error) {
	var (
		records []models.User
		total   int64
	)

	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Scopes(filter.scope()).Count(&total).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Scopes(filter.scope()).
			Order(filter.orderClause()).
			Offset(filter.offset()).
			Limit(filter.Limit).
			Find(&records).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
