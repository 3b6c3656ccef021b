// Package item provides implementations of an Item repository.
package item

import (
	"errors"

	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	"gorm.io/gorm"
)

// PostgresItemRepo represents an implementation of an Item repository using postgres.
type PostgresItemRepo struct {
	DB *gorm.DB
}

// NewPostgresItemRepo creates a new postgres item repository. The supplied
// handle may be a transaction, in which case every operation runs inside it.
func NewPostgresItemRepo(db *gorm.DB) repository.Item {
	return &PostgresItemRepo{
		DB: db,
	}
}

func (r *PostgresItemRepo) Count(seek *repository.PageSeekOptions) (count int64, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Model(&models.Item{}).Where("id < ?", seek.StartId).Count(&count)
	case repository.SeekDirectionAfter:
		result = r.DB.Model(&models.Item{}).Where("id > ?", seek.StartId).Count(&count)
	case repository.SeekDirectionNone:
		result = r.DB.Model(&models.Item{}).Count(&count)
	default:
		return -1, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return -1, result.Error
	}
	return count, nil
}

func (r *PostgresItemRepo) Fetch(seek *repository.PageSeekOptions) (items []*models.Item, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Limit(seek.RecordLimit).Where("id < ?", seek.StartId).Find(&items)
	case repository.SeekDirectionAfter:
		result = r.DB.Limit(seek.RecordLimit).Where("id > ?", seek.StartId).Find(&items)
	case repository.SeekDirectionNone:
		result = r.DB.Limit(seek.RecordLimit).Find(&items)
	default:
		return nil, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *PostgresItemRepo) Exists(id uint) (bool, error) {
	var exists bool
	result := r.DB.Model(models.Item{}).Select("COUNT(*) > 0").Where("id = ?", id).Find(&exists)
	if result.Error != nil {
		return false, result.Error
	}
	return exists, nil
}

func (r *PostgresItemRepo) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	result := r.DB.First(&item, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

// GetByItemNumber resolves a human-entered item code to its catalog row.
// Item numbers are unique by convention only; the first match wins.
func (r *PostgresItemRepo) GetByItemNumber(itemNumber string) (*models.Item, error) {
	var item models.Item
	result := r.DB.Where("item_number = ?", itemNumber).First(&item)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *PostgresItemRepo) Create(i *models.Item) (uint, error) {
	result := r.DB.Create(&i)
	if result.Error != nil {
		return 0, result.Error
	}
	return i.ID, nil
}

func (r *PostgresItemRepo) Update(i *models.Item, fields []string) (*models.Item, error) {
	_, err := r.GetByID(i.ID)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 { // Partial update
		result := r.DB.Model(i).Select(i.UpdateColumns(fields)).Updates(i)
		if result.Error != nil {
			return nil, result.Error
		}
	} else { // Full update
		result := r.DB.Model(i).Updates(i)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return r.GetByID(i.ID)
}

func (r *PostgresItemRepo) Delete(id uint) error {
	result := r.DB.Unscoped().Delete(&models.Item{}, id) // hard delete
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// AdjustInventory applies inventory += delta as a single SQL statement, so a
// concurrent adjustment cannot be lost to a read-modify-write race. Runs
// inside whatever transaction the repository's handle is scoped to.
func (r *PostgresItemRepo) AdjustInventory(id uint, delta int) error {
	result := r.DB.Model(&models.Item{}).Where("id = ?", id).
		UpdateColumn("inventory", gorm.Expr("inventory + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	return nil
}
