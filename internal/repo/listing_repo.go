// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for domain
// listings.
//
// The public feed only ever sees available listings, ordered featured first
// and then newest first. id breaks ties between rows created in the same
// instant so pages never overlap.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

const feedOrder = "is_featured_on_homepage DESC, created_at DESC, id DESC"

func availableListings(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.DomainListing{}).
		Where("is_available = ?", true)
}

// CountAvailable returns the number of listings visible in the feed.
func CountAvailable(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := availableListings(ctx, db).Count(&total).Error
	return total, err
}

// ListAvailablePage returns a window of the feed with Currency and Status
// preloaded. Use CountAvailable for pagination metadata.
func ListAvailablePage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.DomainListing, error) {
	var out []domain.DomainListing
	err := availableListings(ctx, db).
		Preload("Currency").
		Preload("Status").
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListHomepageFeatured returns up to limit available listings flagged for the
// homepage, newest first.
func ListHomepageFeatured(ctx context.Context, db *gorm.DB, limit int) ([]domain.DomainListing, error) {
	var out []domain.DomainListing
	err := availableListings(ctx, db).
		Where("is_featured_on_homepage = ?", true).
		Preload("Currency").
		Preload("Status").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateListing inserts a listing after checking that its price is not
// negative and that its status (and currency, when set) are active. The
// checks and the insert share a transaction.
func CreateListing(ctx context.Context, db *gorm.DB, l *domain.DomainListing) error {
	if l.Price.IsNegative() {
		return ErrNegativePrice
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.DomainStatus{}).
			Where("id = ? AND is_active = ?", l.StatusID, true).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrInactiveStatus
		}
		if l.CurrencyID != nil {
			if err := tx.Model(&domain.Currency{}).
				Where("id = ? AND is_active = ?", *l.CurrencyID, true).
				Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrInactiveCurrency
			}
		}
		if err := tx.Omit("Currency", "Status").Create(l).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}

// GetListing fetches a listing by id with its lookups preloaded.
func GetListing(ctx context.Context, db *gorm.DB, id uint) (*domain.DomainListing, error) {
	var l domain.DomainListing
	err := db.WithContext(ctx).
		Preload("Currency").
		Preload("Status").
		First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}
