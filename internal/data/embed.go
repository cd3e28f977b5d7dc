package data

import (
	_ "embed"
	"fmt"
)

//go:embed defaults/items.yaml
var defaultItems []byte

//go:embed defaults/layout.yaml
var defaultLayout []byte

// DefaultItemTable returns the built-in item table.
func DefaultItemTable() (*ItemTable, error) {
	t, err := ParseItemTable(defaultItems)
	if err != nil {
		return nil, fmt.Errorf("built-in items: %w", err)
	}
	return t, nil
}

// DefaultLayout returns the built-in scene layout.
func DefaultLayout() (*Layout, error) {
	l, err := ParseLayout(defaultLayout)
	if err != nil {
		return nil, fmt.Errorf("built-in layout: %w", err)
	}
	return l, nil
}

// ItemsOrDefault loads path, or the built-in table when path is empty.
func ItemsOrDefault(path string) (*ItemTable, error) {
	if path == "" {
		return DefaultItemTable()
	}
	return LoadItemTable(path)
}

// LayoutOrDefault loads path, or the built-in layout when path is empty.
func LayoutOrDefault(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	return LoadLayout(path)
}
