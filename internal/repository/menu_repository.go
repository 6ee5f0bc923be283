package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/google/uuid"
)

var (
	ErrItemNotFound  = errors.New("menu item not found")
	ErrMenuNotLoaded = errors.New("menu has not been loaded")
)

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	Replace(ctx context.Context, source string, items []models.MenuItem) Snapshot
	Snapshot(ctx context.Context) (Snapshot, bool)
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Categories(ctx context.Context) []string
}

// Snapshot is one successfully loaded menu. It is never mutated after
// creation; a reload produces a new one.
type Snapshot struct {
	Revision   string
	Source     string
	LoadedAt   time.Time
	Items      []models.MenuItem
	Categories []string
}

// InMemoryMenuRepository holds the current menu snapshot in memory
type InMemoryMenuRepository struct {
	mu      sync.RWMutex
	current Snapshot
	loaded  bool
	nowFunc func() time.Time
}

// NewInMemoryMenuRepository creates an empty repository
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	return &InMemoryMenuRepository{
		nowFunc: time.Now,
	}
}

// Replace swaps in a freshly loaded item list and rebuilds the category index
func (r *InMemoryMenuRepository) Replace(ctx context.Context, source string, items []models.MenuItem) Snapshot {
	owned := models.CloneItems(items)
	snap := Snapshot{
		Revision:   uuid.New().String(),
		Source:     source,
		LoadedAt:   r.nowFunc().UTC(),
		Items:      owned,
		Categories: menu.BuildCategories(owned),
	}

	r.mu.Lock()
	r.current = snap
	r.loaded = true
	r.mu.Unlock()

	return snap
}

// Snapshot returns the current snapshot and whether one has been loaded
func (r *InMemoryMenuRepository) Snapshot(ctx context.Context) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.loaded
}

// GetAll returns a copy of every item in source order
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, ErrMenuNotLoaded
	}
	return models.CloneItems(r.current.Items), nil
}

// GetByID returns the first item whose id equals id
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, ErrMenuNotLoaded
	}
	for _, item := range r.current.Items {
		if item.ID == id {
			found := item.Clone()
			return &found, nil
		}
	}
	return nil, ErrItemNotFound
}

// Categories returns the category index, or just "All" before the first load
func (r *InMemoryMenuRepository) Categories(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return []string{menu.AllCategory}
	}
	out := make([]string, len(r.current.Categories))
	copy(out, r.current.Categories)
	return out
}
