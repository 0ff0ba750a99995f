package repository

import (
	"context"
	"errors"

	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
)

var ErrNotFound = errors.New("restaurant not found")

// Filter describes the store-level predicate the query service builds from
// request parameters. Country is matched as a full value, case-insensitively;
// the remaining fields are case-insensitive substring matches. Empty fields
// are skipped.
type Filter struct {
	Country    string
	State      string
	City       string
	Cuisine    string
	PostalCode string
}

// Sort is a deterministic sort order. Field is a stored field name
// ("name" or "rating"); random sampling is a separate Store operation.
type Sort struct {
	Field string
	Desc  bool
}

// Store defines the persistence operations the query service relies on.
type Store interface {
	Insert(ctx context.Context, r *restaurant.Restaurant) (string, error)
	InsertMany(ctx context.Context, rs []*restaurant.Restaurant) (int, error)
	GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*restaurant.Restaurant, error)
	Delete(ctx context.Context, id string) error

	Find(ctx context.Context, f Filter, s Sort, skip, limit int64) ([]*restaurant.Restaurant, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Sample(ctx context.Context, f Filter, size int64) ([]*restaurant.Restaurant, error)
	Distinct(ctx context.Context, field string, f Filter) ([]string, error)
	TextSearch(ctx context.Context, query, country string) ([]*restaurant.Restaurant, error)
}
