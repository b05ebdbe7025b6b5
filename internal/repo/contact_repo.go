// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for contact
// submissions and the contact page configuration.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/domain"
)

// CreateSubmission inserts a contact submission. A UUID and UTC submission
// time are assigned when missing.
func CreateSubmission(ctx context.Context, db *gorm.DB, s *domain.ContactSubmission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(s).Error
}

// GetSubmission fetches a submission by id, or ErrNotFound.
func GetSubmission(ctx context.Context, db *gorm.DB, id string) (*domain.ContactSubmission, error) {
	var s domain.ContactSubmission
	err := db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CountSubmissions returns the total number of submissions.
func CountSubmissions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.ContactSubmission{}).Count(&total).Error
	return total, err
}

// ListSubmissionsPage returns submissions newest first.
func ListSubmissionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ContactSubmission, error) {
	var out []domain.ContactSubmission
	err := db.WithContext(ctx).
		Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkResponded sets the only mutable column of a submission. It returns
// ErrNotFound if no row matches.
func MarkResponded(ctx context.Context, db *gorm.DB, id string, responded bool) error {
	res := db.WithContext(ctx).
		Model(&domain.ContactSubmission{ID: id}).
		Update("is_responded", responded)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveContactInfo returns the active contact configuration, or (nil, nil)
// when no row is active.
func ActiveContactInfo(ctx context.Context, db *gorm.DB) (*domain.ContactInfo, error) {
	var ci domain.ContactInfo
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC, id DESC").
		First(&ci).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

// SaveContactInfo creates or updates a contact configuration. When the row
// is active every other row is deactivated in the same transaction.
func SaveContactInfo(ctx context.Context, db *gorm.DB, ci *domain.ContactInfo) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Save(ci).Error; err != nil {
			return err
		}
		if !ci.IsActive {
			return nil
		}
		return deactivateOthers[domain.ContactInfo](tx, ci.ID)
	})
}

// ListActiveServices returns the visible services of a contact configuration.
func ListActiveServices(ctx context.Context, db *gorm.DB, contactInfoID uint) ([]domain.ContactService, error) {
	var out []domain.ContactService
	err := db.WithContext(ctx).
		Where("contact_info_id = ? AND is_active = ?", contactInfoID, true).
		Order("sort_order ASC, name ASC").
		Find(&out).Error
	return out, err
}

// CreateService adds a service bullet to a contact configuration.
func CreateService(ctx context.Context, db *gorm.DB, s *domain.ContactService) error {
	return db.WithContext(ctx).Create(s).Error
}

// ListActiveExpectations returns the visible "What to Expect" cards.
func ListActiveExpectations(ctx context.Context, db *gorm.DB) ([]domain.ExpectationItem, error) {
	var out []domain.ExpectationItem
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, title ASC").
		Find(&out).Error
	return out, err
}

// CreateExpectation inserts a "What to Expect" card.
func CreateExpectation(ctx context.Context, db *gorm.DB, e *domain.ExpectationItem) error {
	return db.WithContext(ctx).Create(e).Error
}
