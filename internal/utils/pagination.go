// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
)

// ErrNotNonNegativeInt is returned by ParseNonNegativeInt for input that is
// not a base-10 integer >= 0.
var ErrNotNonNegativeInt = errors.New("not a non-negative integer")

// ParseNonNegativeInt parses s as a base-10 integer >= 0. An empty string
// yields def. Surrounding whitespace, signs other than a leading '+',
// fractions and out-of-range values are rejected.
//
// Example:
//
//	n, _ := utils.ParseNonNegativeInt("42", 0) // 42
//	n, _ = utils.ParseNonNegativeInt("", 6)    // 6
//	_, err := utils.ParseNonNegativeInt("-1", 0) // ErrNotNonNegativeInt
func ParseNonNegativeInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrNotNonNegativeInt
	}
	return n, nil
}
