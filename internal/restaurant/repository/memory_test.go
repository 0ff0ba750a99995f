package repository

import (
	"context"
	"testing"

	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *MemoryRepo, rs ...*restaurant.Restaurant) {
	t.Helper()
	for _, r := range rs {
		r.ApplyDefaults()
		_, err := repo.Insert(context.Background(), r)
		require.NoError(t, err)
	}
}

func TestMemoryRepo_FilterSemantics(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo,
		&restaurant.Restaurant{Name: "A", Address: "1 St", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada"},
		&restaurant.Restaurant{Name: "B", Address: "2 St", City: "Montreal", State: "Quebec", Province: "Quebec", Country: "Canada"},
		&restaurant.Restaurant{Name: "C", Address: "3 St", City: "Austin", State: "Texas", Province: "Texas", Country: "USA"},
	)
	ctx := context.Background()

	// country is a full case-insensitive match
	n, err := repo.Count(ctx, Filter{Country: "canada"})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	// a country prefix must not match
	n, err = repo.Count(ctx, Filter{Country: "can"})
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	// state is a case-insensitive substring match
	n, err = repo.Count(ctx, Filter{Country: "Canada", State: "onta"})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestMemoryRepo_UpdateMergesFields(t *testing.T) {
	repo := NewMemoryRepo()
	r := &restaurant.Restaurant{Name: "Old", Address: "1 St", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada"}
	seed(t, repo, r)
	ctx := context.Background()

	updated, err := repo.Update(ctx, r.ID.Hex(), map[string]interface{}{"name": "New", "reviews": 7})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Name)
	require.Equal(t, 7, updated.Reviews)
	// untouched fields survive the merge
	require.Equal(t, "Toronto", updated.City)
	require.Equal(t, r.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestMemoryRepo_NotFound(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_, err := repo.GetByID(ctx, "64b000000000000000000000")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "64b000000000000000000000"), ErrNotFound)
	_, err = repo.Update(ctx, "64b000000000000000000000", map[string]interface{}{"name": "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_SampleSizeAndDistinct(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo,
		&restaurant.Restaurant{Name: "A", Address: "1", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada"},
		&restaurant.Restaurant{Name: "B", Address: "2", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada"},
		&restaurant.Restaurant{Name: "C", Address: "3", City: "Ottawa", State: "Ontario", Province: "Ontario", Country: "Canada"},
	)
	ctx := context.Background()

	sampled, err := repo.Sample(ctx, Filter{Country: "Canada"}, 2)
	require.NoError(t, err)
	require.Len(t, sampled, 2)

	cities, err := repo.Distinct(ctx, "city", Filter{Country: "Canada"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Toronto", "Ottawa"}, cities)
}

func TestMemoryRepo_TextSearchOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo,
		&restaurant.Restaurant{Name: "Kebab Kebab House", Address: "1", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada", Description: "kebab and shawarma"},
		&restaurant.Restaurant{Name: "Pizza Place", Address: "2", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada", Description: "one kebab on the menu"},
		&restaurant.Restaurant{Name: "Sushi Bar", Address: "3", City: "Toronto", State: "Ontario", Province: "Ontario", Country: "Canada"},
	)
	ctx := context.Background()

	hits, err := repo.TextSearch(ctx, "kebab", "Canada")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	require.Equal(t, "Kebab Kebab House", hits[0].Name)
}
