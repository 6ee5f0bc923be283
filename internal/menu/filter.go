package menu

import (
	"strings"

	"github.com/Lixing-Zhang/menu-board/internal/models"
	"golang.org/x/text/unicode/norm"
)

// FilterState is the caller-owned selection applied to a menu
type FilterState struct {
	Category string
	Query    string
}

// DefaultFilter selects every item
func DefaultFilter() FilterState {
	return FilterState{Category: AllCategory}
}

// Active reports whether the state restricts anything
func (f FilterState) Active() bool {
	return (f.Category != "" && f.Category != AllCategory) || strings.TrimSpace(f.Query) != ""
}

// Apply is shorthand for Select(items, f.Category, f.Query)
func (f FilterState) Apply(items []models.MenuItem) []models.MenuItem {
	return Select(items, f.Category, f.Query)
}

// Select returns the items in category whose text matches query, in source
// order. Search composes on top of the category filter. The result is a
// fresh deep copy and an empty result is not an error.
func Select(items []models.MenuItem, category, query string) []models.MenuItem {
	needle := foldText(strings.TrimSpace(query))

	result := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if category != AllCategory && item.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(searchText(item), needle) {
			continue
		}
		result = append(result, item.Clone())
	}

	return result
}

func searchText(item models.MenuItem) string {
	return foldText(item.Name + " " + item.Description + " " + item.Category)
}

// foldText NFKC-normalizes and lower-cases s for substring matching
func foldText(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(norm.NFKC.String(s))
}
