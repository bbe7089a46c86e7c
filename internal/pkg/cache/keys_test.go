package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsKey_Deterministic(t *testing.T) {
	a := FieldsKey(map[string]string{"location": "kilimani", "type": "apartment", "min_bedrooms": "2"})
	b := FieldsKey(map[string]string{"min_bedrooms": "2", "type": "apartment", "location": "kilimani"})
	assert.Equal(t, a, b)
}

func TestFieldsKey_DistinguishesValues(t *testing.T) {
	a := FieldsKey(map[string]string{"location": "kilimani"})
	b := FieldsKey(map[string]string{"location": "westlands"})
	assert.NotEqual(t, a, b)
}

func TestNamespacedKey_NilCache(t *testing.T) {
	var c *Cache
	key := c.NamespacedKey(context.Background(), NamespaceList, map[string]string{"page_size": "20"})
	assert.Contains(t, key, NamespaceList+":v0:")
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "properties:detail:abc", DetailKey("abc"))
}

func TestNilCache_IsAlwaysMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var out string
	hit, err := c.Get(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.Set(ctx, "k", "v"))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Invalidate(ctx, ListingNamespaces...))
}
