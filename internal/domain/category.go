package domain

import (
	"context"
	"errors"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// Category groups questions under a display label
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap renders categories as the id -> type mapping clients expect
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id int) (*Category, error)
}

// ErrCacheMiss is returned by a CategoryCache holding no categories
var ErrCacheMiss = errors.New("cache miss")

// CategoryCache stores the full category list between requests
type CategoryCache interface {
	// Get returns the cached categories or ErrCacheMiss
	Get(ctx context.Context) ([]Category, error)

	// Set replaces the cached categories
	Set(ctx context.Context, categories []Category) error
}
