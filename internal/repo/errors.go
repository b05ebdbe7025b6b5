package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

var (
	// ErrDuplicate indicates a unique constraint rejected the insert.
	ErrDuplicate = errors.New("duplicate")
	// ErrProtected is returned when deleting a lookup row still referenced
	// by a listing.
	ErrProtected = errors.New("record is referenced and cannot be deleted")
	// ErrInactiveStatus is returned when a listing points at an inactive or
	// missing status.
	ErrInactiveStatus = errors.New("status is not active")
	// ErrInactiveCurrency is returned when a listing points at an inactive or
	// missing currency.
	ErrInactiveCurrency = errors.New("currency is not active")
	// ErrNegativePrice is returned for listings priced below zero.
	ErrNegativePrice = errors.New("price must be non-negative")
)

// isUniqueViolation recognizes unique violations. glebarez/sqlite often
// returns plain-text errors instead of gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}

// isForeignKeyViolation recognizes FOREIGN KEY constraint failures.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
