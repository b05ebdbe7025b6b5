package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

// ListActiveCurrencies returns currencies selectable for new listings.
func ListActiveCurrencies(ctx context.Context, db *gorm.DB) ([]domain.Currency, error) {
	var out []domain.Currency
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	return out, err
}

// ListActiveStatuses returns statuses selectable for new listings.
func ListActiveStatuses(ctx context.Context, db *gorm.DB) ([]domain.DomainStatus, error) {
	var out []domain.DomainStatus
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	return out, err
}

// CreateCurrency inserts a currency, mapping unique violations to ErrDuplicate.
func CreateCurrency(ctx context.Context, db *gorm.DB, c *domain.Currency) error {
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// CreateStatus inserts a status, mapping unique violations to ErrDuplicate.
func CreateStatus(ctx context.Context, db *gorm.DB, s *domain.DomainStatus) error {
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteCurrency removes an unreferenced currency. It returns ErrProtected
// when any listing still uses it and ErrNotFound when it does not exist.
func DeleteCurrency(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteProtected(ctx, db, &domain.Currency{}, "currency_id", id)
}

// DeleteStatus removes an unreferenced status, like DeleteCurrency.
func DeleteStatus(ctx context.Context, db *gorm.DB, id uint) error {
	return deleteProtected(ctx, db, &domain.DomainStatus{}, "status_id", id)
}

// deleteProtected checks references and deletes inside one transaction. The
// RESTRICT foreign key backs the check for writers outside this process.
func deleteProtected(ctx context.Context, db *gorm.DB, model any, fkColumn string, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.DomainListing{}).
			Where(fkColumn+" = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrProtected
		}
		res := tx.Delete(model, id)
		if res.Error != nil {
			if isForeignKeyViolation(res.Error) {
				return ErrProtected
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
