package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Category names used throughout the application. Inferred categories use
// these exact spellings so they line up with the pull sheet's pick order.
const (
	CategoryStandard      = "Standard"
	CategoryXtreme        = "Xtreme"
	CategoryPolarized     = "Polarized"
	CategoryKids          = "Kids"
	CategoryKidsXtreme    = "Kids Xtreme"
	CategoryRetainers     = "Retainers"
	CategoryRacks         = "Racks"
	CategoryUncategorized = "Uncategorized"
)

// swagger:model item
// Item represents a catalog entry: a sellable product identified by a
// human-facing item number, with an on-hand inventory count.
type Item struct {
	gorm.Model
	// Human-facing item code, e.g. "A_100". Unique by convention, not enforced at storage.
	ItemNumber string `json:"itemNumber" gorm:"index"`
	// Display name of the item.
	Name string `json:"name"`
	// Number of units on hand. May go negative under the simple-decrement policy.
	Inventory int `json:"inventory"`
	// Descriptive attributes, stored opaquely for the catalog browser.
	Type       string `json:"type"`
	Category   string `json:"category"`
	Collection string `json:"collection"`
	Style      string `json:"style"`
	Special    string `json:"special"`
	ImageURL   string `json:"imageURL"`
}

func (i *Item) IsValid() error {
	errMsgPrefix := "failed to validate item: "
	if err := i.itemNumberIsValid(); err != nil {
		return errors.New(errMsgPrefix + err.Error())
	}
	if err := i.nameIsValid(); err != nil {
		return errors.New(errMsgPrefix + err.Error())
	}
	return nil
}

func (i *Item) PartialUpdateIsValid(selectedFields []string) error {
	var err error
	for _, field := range selectedFields {
		switch field {
		case "itemNumber":
			err = i.itemNumberIsValid()
		case "name":
			err = i.nameIsValid()
		case "inventory", "type", "category", "collection", "style", "special", "imageURL":
			err = nil
		default:
			err = fmt.Errorf("field name is invalid: %s", field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// itemUpdateColumns maps the JSON field names accepted in partial updates to
// their database column names. gorm's Select matches struct or column names,
// not JSON tags, so the multi-word names must be translated before a partial
// update or the write silently skips them.
var itemUpdateColumns = map[string]string{
	"itemNumber": "item_number",
	"imageURL":   "image_url",
}

// UpdateColumns translates partial-update field names into database column
// names. Names without a mapping pass through unchanged.
func (Item) UpdateColumns(fields []string) []string {
	return translateColumns(itemUpdateColumns, fields)
}

func translateColumns(mapping map[string]string, fields []string) []string {
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		if column, ok := mapping[field]; ok {
			columns = append(columns, column)
		} else {
			columns = append(columns, field)
		}
	}
	return columns
}

func (i *Item) itemNumberIsValid() error {
	if strings.TrimSpace(i.ItemNumber) == "" {
		return errors.New("itemNumber must not be blank")
	}
	return nil
}

func (i *Item) nameIsValid() error {
	if len(i.Name) < 1 {
		return errors.New("name must be at least 1 character")
	}
	return nil
}

// categoryPrefixes maps item number prefix codes to suggested categories.
// Evaluated in order, first match wins. The kids prefixes (KB_/KG_/KU_) are
// collapsed into the single "Kids" category.
var categoryPrefixes = []struct {
	prefixes []string
	category string
}{
	{[]string{"A_", "S_", "R_", "F_"}, CategoryStandard},
	{[]string{"P_"}, CategoryPolarized},
	{[]string{"X_"}, CategoryXtreme},
	{[]string{"KB_", "KG_", "KU_"}, CategoryKids},
	{[]string{"KX_"}, CategoryKidsXtreme},
}

// SuggestCategory infers a category for the supplied item number from its
// prefix code. Returns an empty string when no prefix matches. The result is
// only a pre-fill suggestion: it never overwrites a category the catalog
// maintainer has already set.
func SuggestCategory(itemNumber string) string {
	for _, entry := range categoryPrefixes {
		for _, prefix := range entry.prefixes {
			if strings.HasPrefix(itemNumber, prefix) {
				return entry.category
			}
		}
	}
	return ""
}
