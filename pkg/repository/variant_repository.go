package repository

import (
	"github.com/teaguenet/shadebar/pkg/models"
)

// Variant provides an interface for performing operations on a repository of item variants.
type Variant interface {
	// Count returns the count of all the records matching the supplied seek options.
	Count(seek *PageSeekOptions) (count int64, err error)
	// Fetch returns the records in the repository matching the supplied seek options.
	Fetch(seek *PageSeekOptions) ([]*models.Variant, error)
	// GetByID returns the variant with the supplied id, if it exists.
	GetByID(id uint) (*models.Variant, error)
	// Create creates a new record and returns its ID.
	Create(v *models.Variant) (uint, error)
	// Update updates an existing variant in the repository and returns the updated record.
	Update(v *models.Variant, fields []string) (*models.Variant, error)
	// Delete removes the record with the supplied id from the repository.
	Delete(id uint) error
}
