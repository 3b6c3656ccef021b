// Package variant provides implementations of a Variant repository.
package variant

import (
	"errors"

	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	"gorm.io/gorm"
)

// PostgresVariantRepo represents an implementation of a Variant repository using postgres.
type PostgresVariantRepo struct {
	DB *gorm.DB
}

// NewPostgresVariantRepo creates a new postgres variant repository.
func NewPostgresVariantRepo(db *gorm.DB) repository.Variant {
	return &PostgresVariantRepo{
		DB: db,
	}
}

func (r *PostgresVariantRepo) Count(seek *repository.PageSeekOptions) (count int64, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Model(&models.Variant{}).Where("id < ?", seek.StartId).Count(&count)
	case repository.SeekDirectionAfter:
		result = r.DB.Model(&models.Variant{}).Where("id > ?", seek.StartId).Count(&count)
	case repository.SeekDirectionNone:
		result = r.DB.Model(&models.Variant{}).Count(&count)
	default:
		return -1, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return -1, result.Error
	}
	return count, nil
}

func (r *PostgresVariantRepo) Fetch(seek *repository.PageSeekOptions) (variants []*models.Variant, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Limit(seek.RecordLimit).Where("id < ?", seek.StartId).Find(&variants)
	case repository.SeekDirectionAfter:
		result = r.DB.Limit(seek.RecordLimit).Where("id > ?", seek.StartId).Find(&variants)
	case repository.SeekDirectionNone:
		result = r.DB.Limit(seek.RecordLimit).Find(&variants)
	default:
		return nil, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return variants, nil
}

func (r *PostgresVariantRepo) GetByID(id uint) (*models.Variant, error) {
	var variant models.Variant
	result := r.DB.First(&variant, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &variant, nil
}

func (r *PostgresVariantRepo) Create(v *models.Variant) (uint, error) {
	result := r.DB.Create(&v)
	if result.Error != nil {
		return 0, result.Error
	}
	return v.ID, nil
}

func (r *PostgresVariantRepo) Update(v *models.Variant, fields []string) (*models.Variant, error) {
	_, err := r.GetByID(v.ID)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 { // Partial update
		result := r.DB.Model(v).Select(v.UpdateColumns(fields)).Updates(v)
		if result.Error != nil {
			return nil, result.Error
		}
	} else { // Full update
		result := r.DB.Model(v).Updates(v)
		if result.Error != nil {
			return nil, result.Error
		}
	}
	return r.GetByID(v.ID)
}

func (r *PostgresVariantRepo) Delete(id uint) error {
	result := r.DB.Unscoped().Delete(&models.Variant{}, id) // hard delete
	if result.Error != nil {
		return result.Error
	}
	return nil
}
