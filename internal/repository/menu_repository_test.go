package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/menu-board/internal/models"
)

func seedItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Chicken Waffle", Price: 12.99, Category: "Waffle", Ingredients: []string{"chicken"}},
		{ID: "2", Name: "Caesar Salad", Price: 8.99, Category: "Salad", Ingredients: []string{}},
		{ID: "2", Name: "Duplicate Salad", Price: 9.49, Category: "Salad", Ingredients: []string{}},
		{ID: "3", Name: "Margherita Pizza", Price: 14.99, Category: "Pizza", Ingredients: []string{}},
	}
}

func TestInMemoryMenuRepository_BeforeLoad(t *testing.T) {
	repo := NewInMemoryMenuRepository()
	ctx := context.Background()

	if _, err := repo.GetAll(ctx); !errors.Is(err, ErrMenuNotLoaded) {
		t.Errorf("GetAll() error = %v, want %v", err, ErrMenuNotLoaded)
	}

	if _, err := repo.GetByID(ctx, "1"); !errors.Is(err, ErrMenuNotLoaded) {
		t.Errorf("GetByID() error = %v, want %v", err, ErrMenuNotLoaded)
	}

	categories := repo.Categories(ctx)
	if len(categories) != 1 || categories[0] != "All" {
		t.Errorf("Categories() = %v, want [All]", categories)
	}

	if _, ok := repo.Snapshot(ctx); ok {
		t.Error("Snapshot() reported loaded before any load")
	}
}

func TestInMemoryMenuRepository_Replace(t *testing.T) {
	repo := NewInMemoryMenuRepository()
	ctx := context.Background()

	items := seedItems()
	snap := repo.Replace(ctx, "menu.json", items)

	if snap.Revision == "" {
		t.Error("expected a revision id")
	}
	if snap.Source != "menu.json" {
		t.Errorf("source = %q, want menu.json", snap.Source)
	}

	want := []string{"All", "Waffle", "Salad", "Pizza"}
	got := repo.Categories(ctx)
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Mutating the caller's slice must not reach the stored snapshot
	items[0].Name = "mutated"
	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if all[0].Name != "Chicken Waffle" {
		t.Errorf("stored item was aliased, name = %q", all[0].Name)
	}

	// Nor must mutating a returned copy
	all[0].Ingredients[0] = "mutated"
	again, _ := repo.GetAll(ctx)
	if again[0].Ingredients[0] != "chicken" {
		t.Errorf("returned items alias the store, ingredient = %q", again[0].Ingredients[0])
	}

	second := repo.Replace(ctx, "menu.json", seedItems()[:1])
	if second.Revision == snap.Revision {
		t.Error("expected a new revision on replace")
	}
}

func TestInMemoryMenuRepository_GetByID(t *testing.T) {
	repo := NewInMemoryMenuRepository()
	ctx := context.Background()
	repo.Replace(ctx, "menu.json", seedItems())

	tests := []struct {
		name     string
		id       string
		wantName string
		wantErr  error
	}{
		{"existing item", "1", "Chicken Waffle", nil},
		{"duplicate id resolves to first match", "2", "Caesar Salad", nil},
		{"missing item", "999", "", ErrItemNotFound},
		{"ids compare as strings", "01", "", ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID(%q) error = %v, want %v", tt.id, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID(%q) unexpected error: %v", tt.id, err)
			}
			if item.Name != tt.wantName {
				t.Errorf("GetByID(%q) name = %q, want %q", tt.id, item.Name, tt.wantName)
			}
		})
	}
}
