package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliMenu = `[
  {"id": 1, "name": "Paneer Tikka", "desc": "smoky", "price": 220, "category": "Starters", "ingredients": ["paneer", "spices"], "more": "Contains dairy"},
  {"id": 2, "name": "Masala Chai", "desc": "hot and sweet", "price": 40, "category": "Drinks"},
  {"id": 2, "name": "Cold Coffee", "desc": "iced", "price": 90.5, "category": "Drinks"}
]`

// run executes menuctl with args against a temporary menu file
func run(t *testing.T, content string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--source", path))

	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCmd(t *testing.T) {
	out, err := run(t, cliMenu, "categories")
	require.NoError(t, err)
	assert.Equal(t, "All\nStarters\nDrinks\n", out)

	out, err = run(t, `[]`, "categories", "--json")
	require.NoError(t, err)

	var categories []string
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	assert.Equal(t, []string{"All"}, categories)
}

func TestListCmd(t *testing.T) {
	out, err := run(t, cliMenu, "list", "--category", "Drinks")
	require.NoError(t, err)
	assert.Contains(t, out, "Masala Chai")
	assert.Contains(t, out, "Cold Coffee")
	assert.NotContains(t, out, "Paneer Tikka")
	assert.Contains(t, out, "₹90.5")

	out, err = run(t, cliMenu, "list", "-q", "HOT")
	require.NoError(t, err)
	assert.Contains(t, out, "Masala Chai")
	assert.NotContains(t, out, "Cold Coffee")

	out, err = run(t, cliMenu, "list", "-c", "Starters", "-q", "iced")
	require.NoError(t, err)
	assert.Equal(t, "No items found.\n", out)

	out, err = run(t, cliMenu, "list", "--json", "-q", "coffee")
	require.NoError(t, err)
	var items []models.MenuItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Cold Coffee", items[0].Name)
}

func TestShowCmd(t *testing.T) {
	out, err := run(t, cliMenu, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Paneer Tikka")
	assert.Contains(t, out, "- paneer")
	assert.Contains(t, out, "Contains dairy")

	out, err = run(t, cliMenu, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Masala Chai", "duplicate ids resolve to the first item")
	assert.Contains(t, out, "Not listed")

	_, err = run(t, cliMenu, "show", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateCmd(t *testing.T) {
	out, err := run(t, cliMenu, "validate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ok: 3 items, 2 categories"))
	assert.Contains(t, out, `id "2" is used more than once`)

	_, err = run(t, `{"items": []}`, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, menu.ErrShape)

	_, err = run(t, `[{`, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, menu.ErrParse)
}
