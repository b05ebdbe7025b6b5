// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used by the
// listing page header.
package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceRange holds the cheapest and most expensive available prices.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ListingStats returns the number of available listings and their price
// range. When there are none, the count is 0 and the range is nil.
//
// Return values:
//   - count: total available listings
//   - rng:   pointer to the min/max price, or nil if no rows
//   - err:   database error, if any
func ListingStats(ctx context.Context, db *gorm.DB) (count int64, rng *PriceRange, err error) {
	if err = availableListings(ctx, db).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Ordered single-row reads instead of MIN()/MAX() so the decimal scanner
	// sees the column value, not an aggregate of unknown type.
	var lo, hi struct {
		Price decimal.Decimal
	}
	if err = availableListings(ctx, db).Select("price").Order("price ASC").Limit(1).Scan(&lo).Error; err != nil {
		return 0, nil, err
	}
	if err = availableListings(ctx, db).Select("price").Order("price DESC").Limit(1).Scan(&hi).Error; err != nil {
		return 0, nil, err
	}
	return count, &PriceRange{Min: lo.Price, Max: hi.Price}, nil
}
