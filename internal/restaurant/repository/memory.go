package repository

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Store used by unit tests. It mirrors the Mongo
// repository's matching, sorting and sampling semantics closely enough that
// the service and handler layers can be exercised without a database.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*restaurant.Restaurant
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*restaurant.Restaurant)}
}

func matches(f Filter, r *restaurant.Restaurant) bool {
	if f.Country != "" && !strings.EqualFold(f.Country, r.Country) {
		return false
	}
	if f.State != "" && !containsFold(r.State, f.State) {
		return false
	}
	if f.City != "" && !containsFold(r.City, f.City) {
		return false
	}
	if f.Cuisine != "" && !containsFold(r.Cuisine, f.Cuisine) {
		return false
	}
	if f.PostalCode != "" && !containsFold(r.PostalCode, f.PostalCode) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (m *MemoryRepo) Insert(ctx context.Context, r *restaurant.Restaurant) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	m.store[r.ID.Hex()] = r
	return r.ID.Hex(), nil
}

func (m *MemoryRepo) InsertMany(ctx context.Context, rs []*restaurant.Restaurant) (int, error) {
	for _, r := range rs {
		if _, err := m.Insert(ctx, r); err != nil {
			return 0, err
		}
	}
	return len(rs), nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

// Update merges the given bson-named fields into the stored document by
// round-tripping through bson, the same way a $set behaves in Mongo.
func (m *MemoryRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*restaurant.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	raw, err := bson.Marshal(existing)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == "_id" || k == "id" || k == "createdAt" {
			continue
		}
		doc[k] = v
	}
	doc["updatedAt"] = time.Now().UTC()
	merged, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var updated restaurant.Restaurant
	if err := bson.Unmarshal(merged, &updated); err != nil {
		return nil, err
	}
	m.store[id] = &updated
	return &updated, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) filtered(f Filter) []*restaurant.Restaurant {
	out := []*restaurant.Restaurant{}
	for _, r := range m.store {
		if matches(f, r) {
			out = append(out, r)
		}
	}
	return out
}

func (m *MemoryRepo) Find(ctx context.Context, f Filter, s Sort, skip, limit int64) ([]*restaurant.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.filtered(f)
	field := s.Field
	if field == "" {
		field = "name"
	}
	sort.SliceStable(rs, func(i, j int) bool {
		var a, b string
		switch field {
		case "rating":
			a, b = rs[i].Rating, rs[j].Rating
		default:
			a, b = rs[i].Name, rs[j].Name
		}
		if s.Desc {
			return a > b
		}
		return a < b
	})
	if skip >= int64(len(rs)) {
		return []*restaurant.Restaurant{}, nil
	}
	rs = rs[skip:]
	if limit > 0 && int64(len(rs)) > limit {
		rs = rs[:limit]
	}
	return rs, nil
}

func (m *MemoryRepo) Count(ctx context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.filtered(f))), nil
}

func (m *MemoryRepo) Sample(ctx context.Context, f Filter, size int64) ([]*restaurant.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.filtered(f)
	rand.Shuffle(len(rs), func(i, j int) { rs[i], rs[j] = rs[j], rs[i] })
	if size > 0 && int64(len(rs)) > size {
		rs = rs[:size]
	}
	return rs, nil
}

func (m *MemoryRepo) Distinct(ctx context.Context, field string, f Filter) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range m.filtered(f) {
		var v string
		switch field {
		case "state":
			v = r.State
		case "city":
			v = r.City
		case "province":
			v = r.Province
		case "country":
			v = r.Country
		case "cuisine":
			v = r.Cuisine
		case "postal_code":
			v = r.PostalCode
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

// TextSearch approximates the Mongo text index: term occurrences across the
// indexed fields score a document, results come back in descending score
// order. Country is exact-match, as in the real query.
func (m *MemoryRepo) TextSearch(ctx context.Context, query, country string) ([]*restaurant.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	terms := strings.Fields(strings.ToLower(query))
	type scored struct {
		r     *restaurant.Restaurant
		score int
	}
	hits := []scored{}
	for _, r := range m.store {
		if r.Country != country {
			continue
		}
		haystack := strings.ToLower(strings.Join([]string{r.Name, r.Cuisine, r.City, r.State, r.Province, r.Description}, " "))
		score := 0
		for _, term := range terms {
			score += strings.Count(haystack, term)
		}
		if score > 0 {
			hits = append(hits, scored{r, score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].r.Name < hits[j].r.Name
	})
	out := make([]*restaurant.Restaurant, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.r)
	}
	return out, nil
}
