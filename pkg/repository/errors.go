package repository

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound is returned when the order id supplied to a get, update,
// or delete operation does not exist in the repository.
var ErrOrderNotFound = errors.New("order not found")

// ItemNotFoundError is returned when an order line's item number cannot be
// resolved against the catalog. Any occurrence aborts the whole write with a
// full rollback.
type ItemNotFoundError struct {
	ItemNumber string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ItemNumber)
}
