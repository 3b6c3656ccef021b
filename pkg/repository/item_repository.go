package repository

import (
	"github.com/teaguenet/shadebar/pkg/models"
)

// Item provides an interface for performing operations on a repository of catalog items.
// Create and Update never touch an item's inventory implicitly: order processing
// adjusts stock only through AdjustInventory, inside its own transaction.
type Item interface {
	// Count returns the count of all the records matching the supplied seek options.
	Count(seek *PageSeekOptions) (count int64, err error)
	// Fetch returns the records in the repository matching the supplied seek options.
	Fetch(seek *PageSeekOptions) ([]*models.Item, error)
	// Exists determines if an item with the supplied id exists.
	Exists(id uint) (bool, error)
	// GetByID returns the item with the supplied id, if it exists.
	GetByID(id uint) (*models.Item, error)
	// GetByItemNumber returns the first item with the supplied item number, if one exists.
	GetByItemNumber(itemNumber string) (*models.Item, error)
	// Create creates a new record and returns its ID.
	Create(i *models.Item) (uint, error)
	// Update updates an existing item in the repository and returns the updated record.
	Update(i *models.Item, fields []string) (*models.Item, error)
	// Delete removes the record with the supplied id from the repository.
	Delete(id uint) error
	// AdjustInventory atomically applies inventory += delta to the item with
	// the supplied id. Delta is negative for a sale.
	AdjustInventory(id uint, delta int) error
}
