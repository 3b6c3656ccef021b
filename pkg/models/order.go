package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// swagger:model order
// Order holds one customer order: a header plus its line items. TotalQuantity
// is denormalized and recomputed by the repository on every write, so it
// always equals the sum of the current lines' quantities.
type Order struct {
	gorm.Model
	CustomerName  string `json:"customerName"`
	Notes         string `json:"notes"`
	TotalQuantity int    `json:"totalQuantity"`
	// Lines resolved against the current catalog at read time. Not a stored column.
	Lines []ResolvedLine `json:"items" gorm:"-"`
}

// OrderLine is one (item, quantity) pair within an order. The order
// exclusively owns its lines; they have no independent lifecycle. The item is
// referenced by its business key and resolved against the catalog at read time.
type OrderLine struct {
	gorm.Model
	OrderID    uint   `json:"orderId" gorm:"index"`
	ItemNumber string `json:"itemNumber"`
	Quantity   int    `json:"quantity"`
}

func (OrderLine) TableName() string {
	return "order_items"
}

// ResolvedLine is an order line joined with the catalog fields the pull sheet
// and order views display. Display fields are read fresh from the catalog on
// every query, never frozen at order-creation time; a line whose item no
// longer exists in the catalog keeps empty display fields.
type ResolvedLine struct {
	ItemNumber string `json:"itemNumber"`
	Quantity   int    `json:"quantity"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Collection string `json:"collection"`
}

func (o *Order) CustomerNameIsValid() error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return errors.New("customerName must not be blank")
	}
	return nil
}

// FilterLines drops lines that carry a blank item number or a non-positive
// quantity and trims surrounding whitespace off the surviving item numbers.
// Dropped lines are not an error: the whole write only fails if nothing
// survives. Unknown item numbers, by contrast, are a hard failure and are
// caught later inside the write transaction.
func FilterLines(lines []OrderLine) []OrderLine {
	surviving := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		line.ItemNumber = strings.TrimSpace(line.ItemNumber)
		if line.ItemNumber == "" || line.Quantity <= 0 {
			continue
		}
		surviving = append(surviving, line)
	}
	return surviving
}

// SumQuantities returns the total quantity across the supplied lines.
func SumQuantities(lines []OrderLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
