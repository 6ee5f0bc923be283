package menu

import "github.com/Lixing-Zhang/menu-board/internal/models"

// AllCategory is the pseudo-category meaning no category restriction
const AllCategory = "All"

// BuildCategories returns "All" followed by each distinct category in order
// of first occurrence. Labels are compared exactly and never sorted.
func BuildCategories(items []models.MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0, len(items)+1)
	categories = append(categories, AllCategory)

	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}

	return categories
}
