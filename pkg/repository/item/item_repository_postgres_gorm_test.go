package item

import (
	"errors"
	"testing"

	sqlitedriver "github.com/teaguenet/shadebar/pkg/driver/sqlite"
	"github.com/teaguenet/shadebar/pkg/models"
	"github.com/teaguenet/shadebar/pkg/repository"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) repository.Item {
	t.Helper()
	return NewPostgresItemRepo(sqlitedriver.NewTestDB(t).Gorm)
}

func TestGetByItemNumber_itemRepo(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Create(&models.Item{ItemNumber: "A_100", Name: "Aviator Classic", Inventory: 10}); err != nil {
		t.Fatalf("error creating item: %s", err.Error())
	}

	item, err := repo.GetByItemNumber("A_100")
	if err != nil {
		t.Fatalf("error reading item: %s", err.Error())
	}
	if item.Name != "Aviator Classic" {
		t.Errorf("expected name 'Aviator Classic' got '%s'", item.Name)
	}

	_, err = repo.GetByItemNumber("NOPE_1")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected record-not-found error got %v", err)
	}
}

func TestAdjustInventory_itemRepo(t *testing.T) {
	repo := newTestRepo(t)
	id, err := repo.Create(&models.Item{ItemNumber: "A_100", Name: "Aviator Classic", Inventory: 10})
	if err != nil {
		t.Fatalf("error creating item: %s", err.Error())
	}

	if err := repo.AdjustInventory(id, -3); err != nil {
		t.Fatalf("error adjusting inventory: %s", err.Error())
	}
	item, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("error reading item: %s", err.Error())
	}
	if item.Inventory != 7 {
		t.Errorf("expected inventory 7 got %d", item.Inventory)
	}

	if err := repo.AdjustInventory(id, -12); err != nil {
		t.Fatalf("error adjusting inventory: %s", err.Error())
	}
	item, err = repo.GetByID(id)
	if err != nil {
		t.Fatalf("error reading item: %s", err.Error())
	}
	if item.Inventory != -5 {
		t.Errorf("expected inventory to go negative to -5 got %d", item.Inventory)
	}
}

func TestUpdate_partialMultiWordFields_itemRepo(t *testing.T) {
	repo := newTestRepo(t)
	id, err := repo.Create(&models.Item{ItemNumber: "A_100", Name: "Aviator Classic", Inventory: 10})
	if err != nil {
		t.Fatalf("error creating item: %s", err.Error())
	}

	// Fields whose JSON names differ from their column names must still land.
	patch := models.Item{ItemNumber: "A_999", ImageURL: "https://img.example/a999.jpg"}
	patch.ID = id
	updated, err := repo.Update(&patch, []string{"itemNumber", "imageURL"})
	if err != nil {
		t.Fatalf("error updating item: %s", err.Error())
	}
	if updated.ItemNumber != "A_999" {
		t.Errorf("expected item number updated to A_999 got %q", updated.ItemNumber)
	}
	if updated.ImageURL != "https://img.example/a999.jpg" {
		t.Errorf("expected image url updated got %q", updated.ImageURL)
	}
	if updated.Name != "Aviator Classic" {
		t.Errorf("expected name untouched by partial update got %q", updated.Name)
	}
	if updated.Inventory != 10 {
		t.Errorf("expected inventory untouched by partial update got %d", updated.Inventory)
	}
}

func TestUpdate_partialFields_itemRepo(t *testing.T) {
	repo := newTestRepo(t)
	id, err := repo.Create(&models.Item{ItemNumber: "A_100", Name: "Aviator Classic", Category: models.CategoryStandard, Inventory: 10})
	if err != nil {
		t.Fatalf("error creating item: %s", err.Error())
	}

	patch := models.Item{Name: "Aviator Deluxe"}
	patch.ID = id
	updated, err := repo.Update(&patch, []string{"name"})
	if err != nil {
		t.Fatalf("error updating item: %s", err.Error())
	}
	if updated.Name != "Aviator Deluxe" {
		t.Errorf("expected updated name got '%s'", updated.Name)
	}
	if updated.Category != models.CategoryStandard {
		t.Errorf("expected category untouched by partial update got '%s'", updated.Category)
	}
	if updated.Inventory != 10 {
		t.Errorf("expected inventory untouched by partial update got %d", updated.Inventory)
	}
}
