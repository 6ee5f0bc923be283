package models

// MenuItem represents one dish on the menu after normalization.
// Every field is populated once the item leaves the loader.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageRef    string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	More        string   `json:"more"`
}

// Clone returns a copy that shares no memory with the receiver
func (m MenuItem) Clone() MenuItem {
	ingredients := make([]string, len(m.Ingredients))
	copy(ingredients, m.Ingredients)
	m.Ingredients = ingredients
	return m
}

// CloneItems deep-copies a list of items
func CloneItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
