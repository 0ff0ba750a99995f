package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/halalfood/halalfood/backend/api/internal/region"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant/repository"
	"github.com/halalfood/halalfood/backend/api/pkg/metrics"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

var (
	// client input errors, mapped to 400 by the handler
	ErrMissingCountry = errors.New("country is required")
	ErrMissingQuery   = errors.New("Search query is required")
)

// ListingCache caches the region/city picker listings. Implementations must
// treat a miss and an unavailable backend the same way: (nil, false).
type ListingCache interface {
	GetStrings(ctx context.Context, key string) ([]string, bool)
	SetStrings(ctx context.Context, key string, vals []string)
	Purge(ctx context.Context)
}

// Service translates request parameters into store-level filter, sort and
// pagination plans and shapes the responses.
type Service struct {
	store repository.Store
	cache ListingCache
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// NewWithCache wires an optional listing cache for the regions/cities endpoints.
func NewWithCache(store repository.Store, cache ListingCache) *Service {
	return &Service{store: store, cache: cache}
}

// ListParams are the raw location-listing query parameters after parsing.
type ListParams struct {
	Country string
	State   string
	City    string
	Cuisine string
	Page    int64
	Limit   int64
	Sort    string
	Desc    bool
}

// ParseListParams applies the parameter defaults: page 1 and limit 50 on any
// parse failure (never an error), direction asc unless exactly "desc", and
// country Canada when absent.
func ParseListParams(country, state, city, cuisine, page, limit, sortKey, direction string) ListParams {
	p := ListParams{
		Country: strings.TrimSpace(country),
		State:   strings.TrimSpace(state),
		City:    strings.TrimSpace(city),
		Cuisine: strings.TrimSpace(cuisine),
		Page:    defaultPage,
		Limit:   defaultLimit,
		Sort:    sortKey,
		Desc:    direction == "desc",
	}
	if p.Country == "" {
		p.Country = "Canada"
	}
	if n, err := strconv.ParseInt(page, 10, 64); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Pagination is the metadata block returned with every location listing.
type Pagination struct {
	Total   int64 `json:"total"`
	Page    int64 `json:"page"`
	Pages   int64 `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

// LocationResult is the /restaurants/location response shape.
type LocationResult struct {
	Restaurants []*restaurant.Restaurant `json:"restaurants"`
	Pagination  Pagination               `json:"pagination"`
}

// ListByLocation runs the filtered, sorted, paginated location query.
// sort=random replaces the deterministic skip/limit fetch with a store-level
// random sample of the page size; the reported total still counts the full
// filtered set, so a random page can be smaller than total suggests.
func (s *Service) ListByLocation(ctx context.Context, p ListParams) (*LocationResult, error) {
	metrics.QueriesTotal.WithLabelValues("location").Inc()
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	f := repository.Filter{
		Country: p.Country,
		State:   p.State,
		City:    p.City,
		Cuisine: p.Cuisine,
	}

	total, err := s.store.Count(ctx, f)
	if err != nil {
		metrics.QueryErrors.WithLabelValues("location").Inc()
		return nil, err
	}

	var rs []*restaurant.Restaurant
	if p.Sort == "random" {
		rs, err = s.store.Sample(ctx, f, p.Limit)
	} else {
		srt := repository.Sort{Field: "name", Desc: p.Desc}
		if p.Sort == "rating" {
			srt.Field = "rating"
		}
		skip := (p.Page - 1) * p.Limit
		rs, err = s.store.Find(ctx, f, srt, skip, p.Limit)
	}
	if err != nil {
		metrics.QueryErrors.WithLabelValues("location").Inc()
		return nil, err
	}

	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return &LocationResult{
		Restaurants: rs,
		Pagination: Pagination{
			Total:   total,
			Page:    p.Page,
			Pages:   pages,
			HasMore: p.Page*p.Limit < total,
		},
	}, nil
}

// Search performs the country-scoped full-text search, ordered by descending
// relevance score. Missing query is a client error.
func (s *Service) Search(ctx context.Context, q, country string) ([]*restaurant.Restaurant, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrMissingQuery
	}
	if country == "" {
		country = "Canada"
	}
	metrics.QueriesTotal.WithLabelValues("search").Inc()
	rs, err := s.store.TextSearch(ctx, q, country)
	if err != nil {
		metrics.QueryErrors.WithLabelValues("search").Inc()
		return nil, err
	}
	return rs, nil
}

// Regions returns the sorted, deduplicated canonical region names for a
// country. Raw distinct values run through the region normalizer; variants of
// the same region collapse to one entry and unmappable values are dropped.
func (s *Service) Regions(ctx context.Context, country string) ([]string, error) {
	if strings.TrimSpace(country) == "" {
		return nil, ErrMissingCountry
	}
	cacheKey := "regions:" + strings.ToLower(country)
	if cached, ok := s.cacheGet(ctx, cacheKey, "regions"); ok {
		return cached, nil
	}
	metrics.QueriesTotal.WithLabelValues("regions").Inc()
	raw, err := s.store.Distinct(ctx, "state", repository.Filter{Country: country})
	if err != nil {
		metrics.QueryErrors.WithLabelValues("regions").Inc()
		return nil, err
	}
	set := map[string]struct{}{}
	for _, v := range raw {
		if canonical := region.Normalize(v, country); canonical != "" {
			set[canonical] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	s.cacheSet(ctx, cacheKey, out)
	return out, nil
}

// Cities returns the sorted distinct city names for a country, optionally
// narrowed by a region substring. Values keep their stored casing.
func (s *Service) Cities(ctx context.Context, country, state string) ([]string, error) {
	if strings.TrimSpace(country) == "" {
		return nil, ErrMissingCountry
	}
	cacheKey := "cities:" + strings.ToLower(country) + ":" + strings.ToLower(state)
	if cached, ok := s.cacheGet(ctx, cacheKey, "cities"); ok {
		return cached, nil
	}
	metrics.QueriesTotal.WithLabelValues("cities").Inc()
	cities, err := s.store.Distinct(ctx, "city", repository.Filter{Country: country, State: state})
	if err != nil {
		metrics.QueryErrors.WithLabelValues("cities").Inc()
		return nil, err
	}
	sort.Strings(cities)
	s.cacheSet(ctx, cacheKey, cities)
	return cities, nil
}

// PostalLookup matches restaurants by postal-code substring. Deliberately not
// country-scoped: the dedicated lookup spans the whole collection.
func (s *Service) PostalLookup(ctx context.Context, code string) ([]*restaurant.Restaurant, error) {
	metrics.QueriesTotal.WithLabelValues("postal").Inc()
	return s.store.Find(ctx, repository.Filter{PostalCode: code}, repository.Sort{Field: "name"}, 0, defaultLimit)
}

func (s *Service) Get(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, r *restaurant.Restaurant) (string, error) {
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.Insert(ctx, r)
	if err != nil {
		return "", err
	}
	s.cachePurge(ctx)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]interface{}) (*restaurant.Restaurant, error) {
	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.cachePurge(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cachePurge(ctx)
	return nil
}

func (s *Service) cacheGet(ctx context.Context, key, kind string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	vals, ok := s.cache.GetStrings(ctx, key)
	if ok {
		metrics.CacheHits.WithLabelValues(kind).Inc()
		return vals, true
	}
	metrics.CacheMisses.WithLabelValues(kind).Inc()
	return nil, false
}

func (s *Service) cacheSet(ctx context.Context, key string, vals []string) {
	if s.cache != nil {
		s.cache.SetStrings(ctx, key, vals)
	}
}

func (s *Service) cachePurge(ctx context.Context) {
	if s.cache != nil {
		s.cache.Purge(ctx)
	}
}
