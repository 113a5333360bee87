// README: Puppy listing rows and fetch outcomes.
package availability

import (
	"context"
	"errors"
	"time"
)

// StatusAvailable is the status value that marks a puppy as listable.
const StatusAvailable = "Available"

// ErrStoreNotConfigured is returned when no item store credentials were supplied.
var ErrStoreNotConfigured = errors.New("item store is not configured")

// Item is one row of the puppies table. Every field is optional.
type Item struct {
	PuppyName *string    `json:"puppy_name"`
	CallName  *string    `json:"call_name"`
	Sex       *string    `json:"sex"`
	Color     *string    `json:"color"`
	Pattern   *string    `json:"pattern"`
	Price     *float64   `json:"price"`
	BornOn    *time.Time `json:"-"`
	Status    *string    `json:"status"`
}

// Store lists items whose status is StatusAvailable, oldest birth date first.
type Store interface {
	ListAvailable(ctx context.Context) ([]Item, error)
}

// Outcome classifies a fetch.
type Outcome int

const (
	OutcomeListed Outcome = iota
	OutcomeQueryError
	OutcomeEmpty
	OutcomeUnexpected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeListed:
		return "listed"
	case OutcomeQueryError:
		return "query_error"
	case OutcomeEmpty:
		return "empty"
	case OutcomeUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Result is the outcome of one fetch. Items is non-empty only for OutcomeListed.
type Result struct {
	Outcome Outcome
	Items   []Item
}
