package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

// activatable is the set of tables where at most one row may be active.
type activatable interface {
	domain.ContactInfo | domain.HomePage
}

// Activate makes row id the only active row of T. Both updates run in one
// transaction so no reader observes two active rows; concurrent activations
// serialize on the SQLite write lock and the last one wins.
func Activate[T activatable](ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return activateIn[T](tx, id)
	})
}

func activateIn[T activatable](tx *gorm.DB, id uint) error {
	if err := deactivateOthers[T](tx, id); err != nil {
		return err
	}
	var model T
	res := tx.Model(&model).Where("id = ?", id).Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// deactivateOthers clears is_active on every row of T except id.
func deactivateOthers[T activatable](tx *gorm.DB, id uint) error {
	var model T
	return tx.Model(&model).
		Where("is_active = ? AND id <> ?", true, id).
		Update("is_active", false).Error
}
