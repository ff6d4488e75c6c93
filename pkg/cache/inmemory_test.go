package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetFromCache(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("config", map[string]any{"charts": []any{}}, DefaultExpiration)
	c.Set("count", 3, DefaultExpiration)

	tests := []struct {
		name      string
		key       string
		wantFound bool
	}{
		{name: "typed hit", key: "config", wantFound: true},
		{name: "wrong type", key: "count", wantFound: false},
		{name: "miss", key: "absent", wantFound: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := GetFromCache[map[string]any](c, tt.key)
			assert.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				assert.Nil(t, got)
			}
		})
	}
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)
	c.Set("short", "v", 10*time.Millisecond)
	c.Set("keep", "v", NoExpiration)
	assert.Equal(t, 2, c.ItemCount())

	time.Sleep(20 * time.Millisecond)
	_, found := c.Get("short")
	assert.False(t, found)

	c.Delete("keep")
	_, found = c.Get("keep")
	assert.False(t, found)

	c.Set("a", 1, DefaultExpiration)
	c.Flush()
	assert.Equal(t, 0, c.ItemCount())
}
