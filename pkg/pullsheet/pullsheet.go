// Package pullsheet assembles a warehouse pull sheet from a resolved order.
// Assembly is a pure transformation: it never touches storage and is fully
// deterministic for a given input.
package pullsheet

import (
	"sort"
	"time"

	"github.com/teaguenet/shadebar/pkg/models"
)

// categoryPickOrder is the fixed precedence warehouse staff walk the shelves
// in. Categories not listed sort after all listed ones, by item number alone.
var categoryPickOrder = []string{
	models.CategoryStandard,
	models.CategoryXtreme,
	models.CategoryPolarized,
	models.CategoryKids,
	models.CategoryKidsXtreme,
	models.CategoryRetainers,
	models.CategoryRacks,
}

// swagger:model pullsheet
// Sheet is a fulfillment-oriented view of one order: lines sorted into
// picking order, per-category quantity totals, and a grand total recomputed
// from the lines as a cross-check against the stored header value.
type Sheet struct {
	OrderID        uint                  `json:"orderId"`
	CustomerName   string                `json:"customerName"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"createdAt"`
	Lines          []models.ResolvedLine `json:"lines"`
	CategoryTotals map[string]int        `json:"categoryTotals"`
	TotalQuantity  int                   `json:"totalQuantity"`
}

// Assemble builds the pull sheet for the supplied order. The order's lines
// must already be resolved against the catalog. The input is not modified.
func Assemble(o *models.Order) *Sheet {
	lines := make([]models.ResolvedLine, len(o.Lines))
	copy(lines, o.Lines)

	sort.SliceStable(lines, func(i, j int) bool {
		ri, rj := categoryRank(lines[i].Category), categoryRank(lines[j].Category)
		if ri != rj {
			return ri < rj
		}
		// Equal rank within the pick order means equal category; unlisted
		// categories fall through to the item number alone.
		if ri < len(categoryPickOrder) && lines[i].Collection != lines[j].Collection {
			return lines[i].Collection < lines[j].Collection
		}
		return lines[i].ItemNumber < lines[j].ItemNumber
	})

	totals := make(map[string]int)
	grandTotal := 0
	for _, line := range lines {
		category := line.Category
		if category == "" {
			category = models.CategoryUncategorized
		}
		totals[category] += line.Quantity
		grandTotal += line.Quantity
	}

	return &Sheet{
		OrderID:        o.ID,
		CustomerName:   o.CustomerName,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		Lines:          lines,
		CategoryTotals: totals,
		TotalQuantity:  grandTotal,
	}
}

func categoryRank(category string) int {
	for i, c := range categoryPickOrder {
		if c == category {
			return i
		}
	}
	return len(categoryPickOrder)
}
