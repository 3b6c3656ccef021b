// Package order provides implementations of an Order repository.
//
// This is the consistency core of the application: every write touches the
// order header, the order_items rows, and the referenced items' inventory
// counts together, inside one database transaction, so a failure at any step
// rolls the whole operation back.
package order

import (
	"errors"
	"time"

	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	itemrepo "github.com/teaguenet/shadebar/pkg/repository/item"
	"gorm.io/gorm"
)

// PostgresOrderRepo represents an implementation of an Order repository using postgres.
type PostgresOrderRepo struct {
	DB *gorm.DB
}

// NewPostgresOrderRepo creates a new postgres order repository.
func NewPostgresOrderRepo(db *gorm.DB) repository.Order {
	return &PostgresOrderRepo{
		DB: db,
	}
}

func (r *PostgresOrderRepo) Count(seek *repository.PageSeekOptions) (count int64, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Model(&models.Order{}).Where("id < ?", seek.StartId).Count(&count)
	case repository.SeekDirectionAfter:
		result = r.DB.Model(&models.Order{}).Where("id > ?", seek.StartId).Count(&count)
	case repository.SeekDirectionNone:
		result = r.DB.Model(&models.Order{}).Count(&count)
	default:
		return -1, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return -1, result.Error
	}
	return count, nil
}

func (r *PostgresOrderRepo) Fetch(seek *repository.PageSeekOptions) (orders []*models.Order, err error) {
	var result *gorm.DB
	switch seek.Direction {
	case repository.SeekDirectionBefore:
		result = r.DB.Limit(seek.RecordLimit).Where("id < ?", seek.StartId).Find(&orders)
	case repository.SeekDirectionAfter:
		result = r.DB.Limit(seek.RecordLimit).Where("id > ?", seek.StartId).Find(&orders)
	case repository.SeekDirectionNone:
		result = r.DB.Limit(seek.RecordLimit).Find(&orders)
	default:
		return nil, errors.New("invalid seek direction")
	}
	if result.Error != nil {
		return nil, result.Error
	}
	for _, o := range orders {
		o.Lines, err = resolveLines(r.DB, o.ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresOrderRepo) Exists(id uint) (bool, error) {
	var exists bool
	result := r.DB.Model(models.Order{}).Select("COUNT(*) > 0").Where("id = ?", id).Find(&exists)
	if result.Error != nil {
		return false, result.Error
	}
	return exists, nil
}

func (r *PostgresOrderRepo) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	result := r.DB.First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}
		return nil, result.Error
	}
	var err error
	order.Lines, err = resolveLines(r.DB, order.ID)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresOrderRepo) Create(o *models.Order, lines []models.OrderLine) (uint, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		catalog := itemrepo.NewPostgresItemRepo(tx)
		o.TotalQuantity = models.SumQuantities(lines)
		if o.CreatedAt.IsZero() {
			o.CreatedAt = time.Now().UTC()
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for _, line := range lines {
			item, err := catalog.GetByItemNumber(line.ItemNumber)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &repository.ItemNotFoundError{ItemNumber: line.ItemNumber}
				}
				return err
			}
			line.OrderID = o.ID
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := catalog.AdjustInventory(item.ID, -line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}

func (r *PostgresOrderRepo) Update(o *models.Order, lines []models.OrderLine, touchTimestamp bool) (*models.Order, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		catalog := itemrepo.NewPostgresItemRepo(tx)
		var existing models.Order
		if err := tx.First(&existing, o.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrOrderNotFound
			}
			return err
		}

		// Credit the replaced lines' quantities back before the new set is
		// applied, so an edit cycle leaves stock where it started. Lines whose
		// item has since left the catalog have nothing to credit.
		var oldLines []models.OrderLine
		if err := tx.Where("order_id = ?", o.ID).Find(&oldLines).Error; err != nil {
			return err
		}
		for _, old := range oldLines {
			item, err := catalog.GetByItemNumber(old.ItemNumber)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := catalog.AdjustInventory(item.ID, old.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("order_id = ?", o.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}

		for _, line := range lines {
			item, err := catalog.GetByItemNumber(line.ItemNumber)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &repository.ItemNotFoundError{ItemNumber: line.ItemNumber}
				}
				return err
			}
			line.OrderID = o.ID
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := catalog.AdjustInventory(item.ID, -line.Quantity); err != nil {
				return err
			}
		}

		header := map[string]interface{}{
			"customer_name":  o.CustomerName,
			"notes":          o.Notes,
			"total_quantity": models.SumQuantities(lines),
		}
		if touchTimestamp {
			header["created_at"] = time.Now().UTC()
		}
		return tx.Model(&models.Order{}).Where("id = ?", o.ID).Updates(header).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(o.ID)
}

func (r *PostgresOrderRepo) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		catalog := itemrepo.NewPostgresItemRepo(tx)
		var existing models.Order
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrOrderNotFound
			}
			return err
		}

		var oldLines []models.OrderLine
		if err := tx.Where("order_id = ?", id).Find(&oldLines).Error; err != nil {
			return err
		}
		for _, old := range oldLines {
			item, err := catalog.GetByItemNumber(old.ItemNumber)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := catalog.AdjustInventory(item.ID, old.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Order{}, id).Error // hard delete
	})
}

// resolveLines joins an order's lines against the current catalog. The LEFT
// JOIN keeps lines whose item number no longer resolves; their display fields
// come back empty rather than failing the whole query.
func resolveLines(db *gorm.DB, orderID uint) ([]models.ResolvedLine, error) {
	lines := []models.ResolvedLine{}
	result := db.Table("order_items").
		Select("order_items.item_number, order_items.quantity, " +
			"COALESCE(items.name, '') AS name, " +
			"COALESCE(items.category, '') AS category, " +
			"COALESCE(items.collection, '') AS collection").
		Joins("LEFT JOIN items ON items.item_number = order_items.item_number AND items.deleted_at IS NULL").
		Where("order_items.order_id = ? AND order_items.deleted_at IS NULL", orderID).
		Order("order_items.id").
		Scan(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}
