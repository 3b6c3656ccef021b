package repository

import (
	"github.com/teaguenet/shadebar/pkg/models"
)

// Order provides an interface for performing operations on a repository of orders.
//
// Every write runs as one atomic transaction covering the order header, its
// lines, and the referenced items' inventory counts: a failure mid-operation
// leaves the previous consistent state intact. Reads resolve each line's
// display fields against the current catalog; a line whose item number no
// longer resolves is returned with empty display fields rather than failing
// the query.
type Order interface {
	// Count returns the count of all the records matching the supplied seek options.
	Count(seek *PageSeekOptions) (count int64, err error)
	// Fetch returns the orders matching the supplied seek options, with lines
	// resolved against the current catalog.
	Fetch(seek *PageSeekOptions) ([]*models.Order, error)
	// Exists determines if an order with the supplied id exists.
	Exists(id uint) (bool, error)
	// GetByID returns the order with the supplied id with resolved lines.
	// Returns ErrOrderNotFound if no such order exists.
	GetByID(id uint) (*models.Order, error)
	// Create inserts the order header and the supplied lines, decrementing
	// each referenced item's inventory by the line quantity, all in one
	// transaction. The lines must already be filtered and non-empty. Any
	// line whose item number does not resolve aborts the whole operation
	// with an ItemNotFoundError and no side effects. Returns the new
	// order's id.
	Create(o *models.Order, lines []models.OrderLine) (uint, error)
	// Update replaces the order's header fields and entire line set in one
	// transaction, reconciling inventory: replaced lines' quantities are
	// credited back (skipped for items no longer in the catalog) and the new
	// lines' quantities debited. When touchTimestamp is set the order's
	// creation timestamp is refreshed to now, bumping it to the top of a
	// recency-sorted listing. Returns the updated order with resolved lines,
	// or ErrOrderNotFound.
	Update(o *models.Order, lines []models.OrderLine, touchTimestamp bool) (*models.Order, error)
	// Delete removes the order and all of its lines in one transaction,
	// crediting the lines' quantities back to the catalog for items that
	// still exist. Returns ErrOrderNotFound if no such order exists.
	Delete(id uint) error
}
