package menu

import (
	"math"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Defaults applied to fields missing from a source record
const (
	DefaultCategory = "Others"
	DefaultImageRef = "images/placeholder.png"
)

// Candidate source keys per canonical field, first present wins
var (
	idKeys          = []string{"id"}
	nameKeys        = []string{"name"}
	descriptionKeys = []string{"desc", "description"}
	priceKeys       = []string{"price"}
	categoryKeys    = []string{"category"}
	imageKeys       = []string{"image", "img"}
	ingredientKeys  = []string{"ingredients", "ing"}
	moreKeys        = []string{"more"}
)

// Normalize turns one raw record at position idx (0-based) into a canonical item
func Normalize(record gjson.Result, idx int) models.MenuItem {
	item := models.MenuItem{
		ID:          strconv.Itoa(idx + 1),
		Name:        "",
		Description: "",
		Price:       0,
		Category:    DefaultCategory,
		ImageRef:    DefaultImageRef,
		Ingredients: []string{},
		More:        "",
	}

	if v, ok := firstPresent(record, idKeys); ok {
		if id, ok := idString(v); ok {
			item.ID = id
		}
	}
	if v, ok := firstPresent(record, nameKeys); ok {
		item.Name = scalarString(v)
	}
	if v, ok := firstPresent(record, descriptionKeys); ok {
		item.Description = scalarString(v)
	}
	if v, ok := firstPresent(record, priceKeys); ok {
		item.Price = coercePrice(v)
	}
	if v, ok := firstPresent(record, categoryKeys); ok {
		if c := scalarString(v); strings.TrimSpace(c) != "" {
			item.Category = c
		}
	}
	if v, ok := firstPresent(record, imageKeys); ok {
		if img := scalarString(v); img != "" {
			item.ImageRef = img
		}
	}
	if v, ok := firstPresent(record, ingredientKeys); ok && v.IsArray() {
		v.ForEach(func(_, el gjson.Result) bool {
			if isScalar(el) {
				item.Ingredients = append(item.Ingredients, scalarString(el))
			}
			return true
		})
	}
	if v, ok := firstPresent(record, moreKeys); ok {
		item.More = scalarString(v)
	}

	return item
}

// firstPresent returns the value of the first key that exists and is not null
func firstPresent(record gjson.Result, keys []string) (gjson.Result, bool) {
	for _, key := range keys {
		v := lastValue(record, key)
		if v.Exists() && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// lastValue looks key up in record. A repeated key resolves to its last
// occurrence.
func lastValue(record gjson.Result, key string) gjson.Result {
	var found gjson.Result
	record.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}

func idString(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64), true
	}
	return "", false
}

func isScalar(v gjson.Result) bool {
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return true
	}
	return false
}

// scalarString stringifies strings, numbers and booleans; anything else is ""
func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	}
	return ""
}

// coercePrice accepts a number or a numeric string. Anything else, any
// negative amount and anything beyond float64 range becomes 0.
func coercePrice(v gjson.Result) float64 {
	var d decimal.Decimal
	switch v.Type {
	case gjson.Number:
		parsed, err := decimal.NewFromString(v.Raw)
		if err != nil {
			return 0
		}
		d = parsed
	case gjson.String:
		parsed, err := decimal.NewFromString(strings.TrimSpace(v.Str))
		if err != nil {
			return 0
		}
		d = parsed
	default:
		return 0
	}

	if d.IsNegative() {
		return 0
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
