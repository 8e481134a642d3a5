package escrow

import (
	"github.com/theconstruct/settle/errors"
)

// escrow takes 1010-1020
var (
	ErrAlreadyExists      = errors.Register(1010, "escrow already exists")
	ErrInvalidBeneficiary = errors.Register(1011, "invalid beneficiary")
	ErrInvalidEndTime     = errors.Register(1012, "invalid end time")
	ErrNoFundsProvided    = errors.Register(1013, "no funds provided")
	ErrAlreadyReleased    = errors.Register(1014, "escrow already released")
	ErrNotMatured         = errors.Register(1015, "escrow not matured")
)

// IsTemporary returns true if the request failed only because it was sent
// too early and may succeed when retried later.
func IsTemporary(err error) bool {
	return ErrNotMatured.Is(err)
}
