package store

import "errors"

var (
	// ErrEmptyBatch is returned by BatchDelete when called without keys.
	// DynamoDB rejects a BatchWriteItem with no requests, so the call is never issued.
	ErrEmptyBatch = errors.New("groceries: batch delete requires at least one key")
)
