package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrInvalidEntity      = errors.New("invalid entity")
	ErrNotFound           = errors.New("record not found")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrAlreadyTerminal    = errors.New("verification already finalized")
	ErrSelfVerification   = errors.New("owner cannot verify own property")
	ErrUnauthorized       = errors.New("operation not permitted")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrCountersStale      = errors.New("one or more counters are stale")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// StaleCountersError reports which counter sources failed during an
// aggregation pass. The counts object it accompanies is still usable;
// the named counters carry their previous values.
type StaleCountersError struct {
	Sources []string
}

func (e *StaleCountersError) Error() string {
	return fmt.Sprintf("stale counters: %s", strings.Join(e.Sources, ", "))
}

func (e *StaleCountersError) Is(target error) bool {
	return target == ErrCountersStale
}
