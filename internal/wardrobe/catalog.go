package wardrobe

import (
	"database/sql"
	"fmt"
	"time"
)

// Catalog is the session wardrobe: a mutable collection of items keyed by id,
// seeded with the default set and grown by user uploads. Backed by the
// catalog database so surfaces (web, CLI, MCP) share one view.
type Catalog struct {
	db *sql.DB
}

// NewCatalog wraps the given database.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Seed inserts the default items, skipping any id already present.
func (c *Catalog) Seed(items []Item) error {
	for _, item := range items {
		if _, err := c.AddIfAbsent(item); err != nil {
			return err
		}
	}
	return nil
}

// AddIfAbsent inserts the item unless an item with the same id exists.
// Returns true if the item was inserted.
func (c *Catalog) AddIfAbsent(item Item) (bool, error) {
	if item.ID == "" {
		return false, fmt.Errorf("item id must not be empty")
	}
	if !item.Category.Valid() {
		return false, fmt.Errorf("item %q has invalid category %q", item.ID, item.Category)
	}

	custom := 0
	if item.Custom {
		custom = 1
	}

	res, err := c.db.Exec(`
		INSERT INTO wardrobe_items (id, name, url, category, custom, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		item.ID, item.Name, item.URL, string(item.Category), custom, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("insert item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert item: %w", err)
	}
	return n > 0, nil
}

// Get returns the item with the given id, or (nil, nil) if absent.
func (c *Catalog) Get(id string) (*Item, error) {
	row := c.db.QueryRow(`
		SELECT id, name, url, category, custom
		FROM wardrobe_items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns all items, defaults first, each group in insertion order.
func (c *Catalog) List() ([]Item, error) {
	rows, err := c.db.Query(`
		SELECT id, name, url, category, custom
		FROM wardrobe_items
		ORDER BY custom ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*Item, error) {
	var item Item
	var category string
	var custom int
	if err := s.Scan(&item.ID, &item.Name, &item.URL, &category, &custom); err != nil {
		return nil, err
	}
	item.Category = Category(category)
	item.Custom = custom == 1
	return &item, nil
}
