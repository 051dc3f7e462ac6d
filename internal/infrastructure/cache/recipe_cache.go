package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/ports/outbound"
)

// RecipeCache implements outbound.RecipeCache on redis. Entries are JSON
// serialized domain recipes keyed by ID.
type RecipeCache struct {
	client *redis.Client
}

// NewRecipeCache creates a recipe cache over the redis client.
func NewRecipeCache(client *redis.Client) outbound.RecipeCache {
	return &RecipeCache{client: client}
}

func recipeKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:%s", id)
}

// Get returns the cached recipe, or (nil, nil) on a miss.
func (c *RecipeCache) Get(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	payload, err := c.client.Get(ctx, recipeKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r recipe.Recipe
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Set stores the recipe for the TTL.
func (c *RecipeCache) Set(ctx context.Context, r *recipe.Recipe, ttl time.Duration) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, recipeKey(r.ID), payload, ttl).Err()
}

// Invalidate drops the cached entry.
func (c *RecipeCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, recipeKey(id)).Err()
}
