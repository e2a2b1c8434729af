package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/stayfinder/config"
	"github.com/zvrva/stayfinder/internal/domain"
)

type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetSearch(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Listing, error) {
	data, err := c.client.Get(ctx, searchKey(criteria)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, criteria domain.SearchCriteria, listings []domain.Listing) error {
	payload, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(criteria), payload, c.searchTTL).Err()
}

// InvalidateSearches drops every cached search result. Called after any
// listing write so stale results never outlive a mutation by more than the
// round trip.
func (c *RedisCache) InvalidateSearches(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, searchKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

const searchKeyPrefix = "cache:listings:search:"

func searchKey(criteria domain.SearchCriteria) string {
	minPrice, maxPrice := "", ""
	if criteria.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *criteria.MaxPrice)
	}
	return searchKeyPrefix + fmt.Sprintf("%s|%s|%s|%d|%s",
		strings.ToLower(criteria.Location), minPrice, maxPrice, criteria.Guests,
		strings.Join(criteria.PropertyTypes, ","))
}
