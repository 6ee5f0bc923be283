package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/Lixing-Zhang/menu-board/internal/repository"
	"golang.org/x/sync/singleflight"
)

const reloadKey = "menu"

var ErrNoItemSelected = errors.New("no item selected")

// MenuLoader loads the full normalized menu
type MenuLoader interface {
	Load(ctx context.Context) ([]models.MenuItem, error)
	Location() string
}

// LoadResult describes a successful load
type LoadResult struct {
	Revision   string        `json:"revision"`
	Source     string        `json:"source"`
	Items      int           `json:"items"`
	Categories []string      `json:"categories"`
	LoadedAt   time.Time     `json:"loadedAt"`
	Duration   time.Duration `json:"durationNs"`
}

// BrowseResult is a filtered view of the current menu
type BrowseResult struct {
	Items      []models.MenuItem `json:"items"`
	Categories []string          `json:"categories"`
	Category   string            `json:"category"`
	Query      string            `json:"query"`
	Filtered   bool              `json:"filtered"`
	Total      int               `json:"total"`
	Empty      bool              `json:"empty"`
	Revision   string            `json:"revision"`
}

// Status summarizes the load state of the service
type Status struct {
	Loaded      bool      `json:"loaded"`
	Revision    string    `json:"revision,omitempty"`
	Source      string    `json:"source"`
	Items       int       `json:"items"`
	LoadedAt    time.Time `json:"loadedAt,omitzero"`
	LastAttempt time.Time `json:"lastAttempt,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
}

// MenuService handles business logic for the menu
type MenuService struct {
	loader      MenuLoader
	repo        repository.MenuRepository
	logger      *slog.Logger
	loadTimeout time.Duration
	group       singleflight.Group

	mu          sync.RWMutex
	lastAttempt time.Time
	lastErr     error
}

// NewMenuService creates a new menu service
func NewMenuService(loader MenuLoader, repo repository.MenuRepository, logger *slog.Logger, loadTimeout time.Duration) *MenuService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuService{
		loader:      loader,
		repo:        repo,
		logger:      logger,
		loadTimeout: loadTimeout,
	}
}

// Reload fetches the menu and swaps it in. At most one load runs at a time;
// callers arriving while one is in flight share its outcome. On failure the
// current snapshot is left as it was.
func (s *MenuService) Reload(ctx context.Context) (LoadResult, error) {
	ch := s.group.DoChan(reloadKey, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)
		if s.loadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, s.loadTimeout)
			defer cancel()
		}
		return s.reload(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return LoadResult{}, res.Err
		}
		return res.Val.(LoadResult), nil
	case <-ctx.Done():
		return LoadResult{}, ctx.Err()
	}
}

func (s *MenuService) reload(ctx context.Context) (LoadResult, error) {
	start := time.Now()
	items, err := s.loader.Load(ctx)

	s.mu.Lock()
	s.lastAttempt = start.UTC()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load menu",
			"source", s.loader.Location(),
			"kind", string(menu.KindOf(err)),
			"error", err,
		)
		return LoadResult{}, err
	}

	snap := s.repo.Replace(ctx, s.loader.Location(), items)
	result := LoadResult{
		Revision:   snap.Revision,
		Source:     snap.Source,
		Items:      len(snap.Items),
		Categories: snap.Categories,
		LoadedAt:   snap.LoadedAt,
		Duration:   time.Since(start),
	}

	s.logger.Info("menu loaded",
		"source", result.Source,
		"revision", result.Revision,
		"items", result.Items,
		"categories", len(result.Categories)-1,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// Browse applies filter to the current menu
func (s *MenuService) Browse(ctx context.Context, filter menu.FilterState) (*BrowseResult, error) {
	snap, ok := s.repo.Snapshot(ctx)
	if !ok {
		return nil, repository.ErrMenuNotLoaded
	}

	selection := menu.DefaultFilter()
	if category := strings.TrimSpace(filter.Category); category != "" {
		selection.Category = category
	}
	selection.Query = strings.TrimSpace(filter.Query)

	items := selection.Apply(snap.Items)
	categories := make([]string, len(snap.Categories))
	copy(categories, snap.Categories)

	return &BrowseResult{
		Items:      items,
		Categories: categories,
		Category:   selection.Category,
		Query:      selection.Query,
		Filtered:   selection.Active(),
		Total:      len(items),
		Empty:      len(items) == 0,
		Revision:   snap.Revision,
	}, nil
}

// Categories returns the category index, "All" first
func (s *MenuService) Categories(ctx context.Context) []string {
	return s.repo.Categories(ctx)
}

// GetItem resolves a detail lookup. A blank id means nothing was selected,
// which is distinct from an id that matches no item.
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNoItemSelected
	}
	return s.repo.GetByID(ctx, id)
}

// Status reports the current load state
func (s *MenuService) Status(ctx context.Context) Status {
	s.mu.RLock()
	status := Status{
		Source:      s.loader.Location(),
		LastAttempt: s.lastAttempt,
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	s.mu.RUnlock()

	if snap, ok := s.repo.Snapshot(ctx); ok {
		status.Loaded = true
		status.Revision = snap.Revision
		status.Items = len(snap.Items)
		status.LoadedAt = snap.LoadedAt
	}

	return status
}
