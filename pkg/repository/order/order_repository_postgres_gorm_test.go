package order

import (
	"errors"
	"testing"
	"time"

	"github.com/teaguenet/shadebar/pkg/driver"
	sqlitedriver "github.com/teaguenet/shadebar/pkg/driver/sqlite"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	itemrepo "github.com/teaguenet/shadebar/pkg/repository/item"
)

func newTestRepos(t *testing.T) (repository.Order, repository.Item, *driver.DB) {
	t.Helper()
	db := sqlitedriver.NewTestDB(t)
	return NewPostgresOrderRepo(db.Gorm), itemrepo.NewPostgresItemRepo(db.Gorm), db
}

func seedItem(t *testing.T, items repository.Item, itemNumber string, name string, category string, inventory int) uint {
	t.Helper()
	id, err := items.Create(&models.Item{ItemNumber: itemNumber, Name: name, Category: category, Inventory: inventory})
	if err != nil {
		t.Fatalf("error seeding item %s: %s", itemNumber, err.Error())
	}
	return id
}

func itemInventory(t *testing.T, items repository.Item, itemNumber string) int {
	t.Helper()
	item, err := items.GetByItemNumber(itemNumber)
	if err != nil {
		t.Fatalf("error reading item %s: %s", itemNumber, err.Error())
	}
	return item.Inventory
}

func countLines(t *testing.T, db *driver.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Gorm.Model(&models.OrderLine{}).Count(&count).Error; err != nil {
		t.Fatalf("error counting order lines: %s", err.Error())
	}
	return count
}

func TestCreate_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)
	seedItem(t, items, "P_7", "Polar Drift", models.CategoryPolarized, 5)

	order := models.Order{CustomerName: "Beachside Gifts", Notes: "ship friday"}
	lines := []models.OrderLine{
		{ItemNumber: "A_100", Quantity: 3},
		{ItemNumber: "P_7", Quantity: 1},
	}
	id, err := orders.Create(&order, lines)
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}
	if id == 0 {
		t.Errorf("expected a nonzero order id")
	}

	got, err := orders.GetByID(id)
	if err != nil {
		t.Fatalf("error reading order back: %s", err.Error())
	}
	if got.CustomerName != "Beachside Gifts" {
		t.Errorf("expected customer name 'Beachside Gifts' got '%s'", got.CustomerName)
	}
	if got.TotalQuantity != 4 {
		t.Errorf("expected total quantity 4 got %d", got.TotalQuantity)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 resolved lines got %d", len(got.Lines))
	}
	if got.Lines[0].Name != "Aviator Classic" || got.Lines[0].Category != models.CategoryStandard {
		t.Errorf("expected first line resolved against the catalog, got %+v", got.Lines[0])
	}

	if inv := itemInventory(t, items, "A_100"); inv != 7 {
		t.Errorf("expected A_100 inventory 7 got %d", inv)
	}
	if inv := itemInventory(t, items, "P_7"); inv != 4 {
		t.Errorf("expected P_7 inventory 4 got %d", inv)
	}
}

func TestCreate_unknownItemRollsBack_orderRepo(t *testing.T) {
	orders, items, db := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	order := models.Order{CustomerName: "Beachside Gifts"}
	lines := []models.OrderLine{
		{ItemNumber: "A_100", Quantity: 3},
		{ItemNumber: "NOPE_1", Quantity: 1},
	}
	_, err := orders.Create(&order, lines)
	var itemErr *repository.ItemNotFoundError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected an item-not-found error got %v", err)
	}
	if itemErr.ItemNumber != "NOPE_1" {
		t.Errorf("expected the error to name NOPE_1 got %s", itemErr.ItemNumber)
	}

	// The whole write rolls back: no header, no lines, no stock change.
	var orderCount int64
	if err := db.Gorm.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("error counting orders: %s", err.Error())
	}
	if orderCount != 0 {
		t.Errorf("expected no orders after rollback got %d", orderCount)
	}
	if lineCount := countLines(t, db); lineCount != 0 {
		t.Errorf("expected no order lines after rollback got %d", lineCount)
	}
	if inv := itemInventory(t, items, "A_100"); inv != 10 {
		t.Errorf("expected A_100 inventory unchanged at 10 got %d", inv)
	}
}

func TestCreate_inventoryMayGoNegative_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 2)

	order := models.Order{CustomerName: "Beachside Gifts"}
	_, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 5}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}
	if inv := itemInventory(t, items, "A_100"); inv != -3 {
		t.Errorf("expected A_100 inventory -3 got %d", inv)
	}
}

func TestGetByID_notFound_orderRepo(t *testing.T) {
	orders, _, _ := newTestRepos(t)
	_, err := orders.GetByID(999)
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected order-not-found error got %v", err)
	}
}

func TestUpdate_replacesLinesAndReconcilesStock_orderRepo(t *testing.T) {
	orders, items, db := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)
	seedItem(t, items, "P_7", "Polar Drift", models.CategoryPolarized, 5)

	order := models.Order{CustomerName: "Beachside Gifts"}
	id, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 3}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}

	replacement := models.Order{CustomerName: "Beachside Gifts & Co", Notes: "updated"}
	replacement.ID = id
	updated, err := orders.Update(&replacement, []models.OrderLine{{ItemNumber: "P_7", Quantity: 2}}, false)
	if err != nil {
		t.Fatalf("error updating order: %s", err.Error())
	}

	if updated.CustomerName != "Beachside Gifts & Co" {
		t.Errorf("expected updated customer name got '%s'", updated.CustomerName)
	}
	if updated.TotalQuantity != 2 {
		t.Errorf("expected total quantity 2 got %d", updated.TotalQuantity)
	}
	if len(updated.Lines) != 1 || updated.Lines[0].ItemNumber != "P_7" {
		t.Fatalf("expected the line set to be replaced, got %+v", updated.Lines)
	}

	// The replaced line's stock is credited back, the new line's debited.
	if inv := itemInventory(t, items, "A_100"); inv != 10 {
		t.Errorf("expected A_100 inventory back at 10 got %d", inv)
	}
	if inv := itemInventory(t, items, "P_7"); inv != 3 {
		t.Errorf("expected P_7 inventory 3 got %d", inv)
	}
	if lineCount := countLines(t, db); lineCount != 1 {
		t.Errorf("expected 1 stored line got %d", lineCount)
	}

	// Repeating the same payload leaves lines and stock where they are.
	_, err = orders.Update(&replacement, []models.OrderLine{{ItemNumber: "P_7", Quantity: 2}}, false)
	if err != nil {
		t.Fatalf("error repeating update: %s", err.Error())
	}
	if inv := itemInventory(t, items, "P_7"); inv != 3 {
		t.Errorf("expected P_7 inventory still 3 after repeated update got %d", inv)
	}
	if lineCount := countLines(t, db); lineCount != 1 {
		t.Errorf("expected 1 stored line after repeated update got %d", lineCount)
	}
}

func TestUpdate_unknownItemRollsBack_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	order := models.Order{CustomerName: "Beachside Gifts"}
	id, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 3}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}

	replacement := models.Order{CustomerName: "Beachside Gifts"}
	replacement.ID = id
	_, err = orders.Update(&replacement, []models.OrderLine{{ItemNumber: "NOPE_1", Quantity: 1}}, false)
	var itemErr *repository.ItemNotFoundError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected an item-not-found error got %v", err)
	}

	got, err := orders.GetByID(id)
	if err != nil {
		t.Fatalf("error reading order back: %s", err.Error())
	}
	if len(got.Lines) != 1 || got.Lines[0].ItemNumber != "A_100" {
		t.Errorf("expected the original line set to survive the rollback, got %+v", got.Lines)
	}
	if got.TotalQuantity != 3 {
		t.Errorf("expected total quantity still 3 got %d", got.TotalQuantity)
	}
	if inv := itemInventory(t, items, "A_100"); inv != 7 {
		t.Errorf("expected A_100 inventory still 7 got %d", inv)
	}
}

func TestUpdate_touchTimestamp_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	past := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	order := models.Order{CustomerName: "Beachside Gifts"}
	order.CreatedAt = past
	id, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 1}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}

	replacement := models.Order{CustomerName: "Beachside Gifts"}
	replacement.ID = id
	updated, err := orders.Update(&replacement, []models.OrderLine{{ItemNumber: "A_100", Quantity: 1}}, false)
	if err != nil {
		t.Fatalf("error updating order: %s", err.Error())
	}
	if !updated.CreatedAt.Equal(past) {
		t.Errorf("expected creation timestamp preserved at %s got %s", past, updated.CreatedAt)
	}

	updated, err = orders.Update(&replacement, []models.OrderLine{{ItemNumber: "A_100", Quantity: 1}}, true)
	if err != nil {
		t.Fatalf("error updating order: %s", err.Error())
	}
	if !updated.CreatedAt.After(past) {
		t.Errorf("expected creation timestamp refreshed past %s got %s", past, updated.CreatedAt)
	}
}

func TestUpdate_notFound_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	missing := models.Order{CustomerName: "Beachside Gifts"}
	missing.ID = 999
	_, err := orders.Update(&missing, []models.OrderLine{{ItemNumber: "A_100", Quantity: 1}}, false)
	if !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected order-not-found error got %v", err)
	}
	if inv := itemInventory(t, items, "A_100"); inv != 10 {
		t.Errorf("expected A_100 inventory unchanged at 10 got %d", inv)
	}
}

func TestDelete_creditsStockBack_orderRepo(t *testing.T) {
	orders, items, db := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	order := models.Order{CustomerName: "Beachside Gifts"}
	id, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 3}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}
	if inv := itemInventory(t, items, "A_100"); inv != 7 {
		t.Fatalf("expected A_100 inventory 7 before delete got %d", inv)
	}

	if err := orders.Delete(id); err != nil {
		t.Fatalf("error deleting order: %s", err.Error())
	}

	if _, err := orders.GetByID(id); !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected order-not-found after delete got %v", err)
	}
	if lineCount := countLines(t, db); lineCount != 0 {
		t.Errorf("expected no lines after delete got %d", lineCount)
	}
	if inv := itemInventory(t, items, "A_100"); inv != 10 {
		t.Errorf("expected A_100 inventory credited back to 10 got %d", inv)
	}
}

func TestDelete_notFound_orderRepo(t *testing.T) {
	orders, _, _ := newTestRepos(t)
	if err := orders.Delete(999); !errors.Is(err, repository.ErrOrderNotFound) {
		t.Errorf("expected order-not-found error got %v", err)
	}
}

func TestGetByID_missingItemResolvesWithEmptyFields_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	itemID := seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)

	order := models.Order{CustomerName: "Beachside Gifts"}
	id, err := orders.Create(&order, []models.OrderLine{{ItemNumber: "A_100", Quantity: 3}})
	if err != nil {
		t.Fatalf("error creating order: %s", err.Error())
	}

	if err := items.Delete(itemID); err != nil {
		t.Fatalf("error deleting item: %s", err.Error())
	}

	got, err := orders.GetByID(id)
	if err != nil {
		t.Fatalf("error reading order back: %s", err.Error())
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected the orphaned line to survive, got %d lines", len(got.Lines))
	}
	line := got.Lines[0]
	if line.ItemNumber != "A_100" || line.Quantity != 3 {
		t.Errorf("expected the line's own fields preserved, got %+v", line)
	}
	if line.Name != "" || line.Category != "" || line.Collection != "" {
		t.Errorf("expected empty display fields for a missing item, got %+v", line)
	}
}

func TestFetch_resolvesLinesPerOrder_orderRepo(t *testing.T) {
	orders, items, _ := newTestRepos(t)
	seedItem(t, items, "A_100", "Aviator Classic", models.CategoryStandard, 10)
	seedItem(t, items, "P_7", "Polar Drift", models.CategoryPolarized, 5)

	first := models.Order{CustomerName: "Beachside Gifts"}
	if _, err := orders.Create(&first, []models.OrderLine{{ItemNumber: "A_100", Quantity: 1}}); err != nil {
		t.Fatalf("error creating first order: %s", err.Error())
	}
	second := models.Order{CustomerName: "Boardwalk Kiosk"}
	if _, err := orders.Create(&second, []models.OrderLine{{ItemNumber: "P_7", Quantity: 2}}); err != nil {
		t.Fatalf("error creating second order: %s", err.Error())
	}

	page, err := orders.Fetch(&repository.PageSeekOptions{RecordLimit: 10, Direction: repository.SeekDirectionNone})
	if err != nil {
		t.Fatalf("error fetching orders: %s", err.Error())
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 orders got %d", len(page))
	}
	if len(page[0].Lines) != 1 || page[0].Lines[0].ItemNumber != "A_100" {
		t.Errorf("expected first order's lines resolved, got %+v", page[0].Lines)
	}
	if len(page[1].Lines) != 1 || page[1].Lines[0].Name != "Polar Drift" {
		t.Errorf("expected second order's lines resolved, got %+v", page[1].Lines)
	}
}
