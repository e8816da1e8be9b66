package ledger

import "errors"

// Domain errors for ledger operations.
var (
	ErrNotFound  = errors.New("ledger row not found")
	ErrDuplicate = errors.New("ledger row already exists")
)
