// Package ident generates identifiers and timestamps for grocery items.
package ident

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewGroceryID returns a new time-ordered grocery identifier (UUID version 1).
// Identifiers generated by one process never repeat; across processes the
// random clock sequence and node make collisions negligible.
func NewGroceryID() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Timestamp encodes t as Unix epoch milliseconds in decimal.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ParseTimestamp decodes a value produced by Timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
