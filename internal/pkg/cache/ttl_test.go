package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLGetSet(t *testing.T) {
	c := NewTTL(time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []byte("v"))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL(time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", []byte("v"))

	current = current.Add(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	current = current.Add(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLPurge(t *testing.T) {
	c := NewTTL(time.Minute)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	current = current.Add(2 * time.Minute)
	assert.Equal(t, 2, c.Purge())
	assert.Empty(t, c.items)
}
