package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/tidwall/gjson"
)

// utf8BOM is tolerated ahead of the document, as RFC 8259 allows
var utf8BOM = []byte("\xEF\xBB\xBF")

// Loader fetches a menu resource and normalizes it into canonical items
type Loader struct {
	source Source
}

// NewLoader creates a loader reading from source
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Location identifies the resource being loaded
func (l *Loader) Location() string {
	return l.source.Location()
}

// Load retrieves and normalizes the whole menu. It is all-or-nothing: on
// error the returned slice is nil.
func (l *Loader) Load(ctx context.Context) ([]models.MenuItem, error) {
	location := l.source.Location()

	data, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, newLoadError(KindFetch, location, err)
	}

	return Parse(location, data)
}

// Parse validates raw menu bytes and normalizes every record, preserving order
func Parse(location string, data []byte) ([]models.MenuItem, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !gjson.ValidBytes(data) {
		return nil, newLoadError(KindParse, location, errors.New("malformed JSON"))
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, newLoadError(KindShape, location, fmt.Errorf("top-level value is %s, want array", describe(root)))
	}

	records := root.Array()
	items := make([]models.MenuItem, 0, len(records))
	for idx, record := range records {
		if !record.IsObject() {
			return nil, newLoadError(KindShape, location, fmt.Errorf("element %d is %s, want object", idx, describe(record)))
		}
		items = append(items, Normalize(record, idx))
	}

	return items, nil
}

func describe(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "an object"
	case v.IsArray():
		return "an array"
	}
	switch v.Type {
	case gjson.String:
		return "a string"
	case gjson.Number:
		return "a number"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Null:
		return "null"
	}
	return "empty"
}
