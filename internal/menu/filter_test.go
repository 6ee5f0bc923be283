package menu

import (
	"testing"

	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Pizza", Description: "cheesy", Category: "Mains", Ingredients: []string{"dough"}},
		{ID: "2", Name: "Cola", Description: "cold drink", Category: "Drinks", Ingredients: []string{}},
	}
}

func ids(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestSelect(t *testing.T) {
	items := []models.MenuItem{
		{ID: "1", Name: "Margherita Pizza", Description: "tomato and basil", Category: "Pizza"},
		{ID: "2", Name: "Iced Tea", Description: "cold and sweet", Category: "Drinks"},
		{ID: "3", Name: "Veggie Pizza", Description: "peppers, olives", Category: "Pizza"},
		{ID: "4", Name: "Cold Brew", Description: "coffee", Category: "Drinks"},
		{ID: "5", Name: "Ｃａｆé Latte", Description: "milk", Category: "Drinks"},
	}

	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{"all, no query", "All", "", []string{"1", "2", "3", "4", "5"}},
		{"blank query is ignored", "All", "   ", []string{"1", "2", "3", "4", "5"}},
		{"category only", "Pizza", "", []string{"1", "3"}},
		{"query only", "All", "cold", []string{"2", "4"}},
		{"query is case-insensitive", "All", "PIZZA", []string{"1", "3"}},
		{"query matches category text", "All", "drinks", []string{"2", "4", "5"}},
		{"category and query compose", "Drinks", "cold", []string{"2", "4"}},
		{"category narrows query", "Pizza", "cold", []string{}},
		{"category match is exact", "pizza", "", []string{}},
		{"unknown category", "Dessert", "", []string{}},
		{"query is trimmed", "All", "  olives ", []string{"3"}},
		{"full-width text folds", "All", "café", []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(items, tt.category, tt.query)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Select(%q, %q) mismatch (-want +got):\n%s", tt.category, tt.query, diff)
			}
		})
	}
}

func TestSelect_Examples(t *testing.T) {
	items := testItems()

	got := Select(items, "All", "")
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("Select(All, \"\") should return items unchanged (-want +got):\n%s", diff)
	}

	got = Select(items, "All", "cold")
	require.Len(t, got, 1)
	assert.Equal(t, "Cola", got[0].Name)

	got = Select(items, "Drinks", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Cola", got[0].Name)
}

func TestSelect_DoesNotAlias(t *testing.T) {
	items := testItems()

	got := Select(items, "All", "")
	got[0].Name = "changed"
	got[0].Ingredients[0] = "changed"

	assert.Equal(t, "Pizza", items[0].Name)
	assert.Equal(t, "dough", items[0].Ingredients[0])
}

func TestSelect_Idempotent(t *testing.T) {
	items := testItems()

	first := Select(items, "Drinks", "drink")
	second := Select(items, "Drinks", "drink")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Select differs (-first +second):\n%s", diff)
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	got := Select(nil, "All", "anything")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterState(t *testing.T) {
	assert.False(t, DefaultFilter().Active())
	assert.False(t, FilterState{}.Active())
	assert.True(t, FilterState{Category: "Drinks"}.Active())
	assert.True(t, FilterState{Category: "All", Query: "tea"}.Active())

	got := FilterState{Category: "Drinks"}.Apply(testItems())
	assert.Equal(t, []string{"2"}, ids(got))
}
