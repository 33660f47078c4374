package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	c := New[string]()
	c.Set("AAPL", "signal", time.Minute)

	got, ok := c.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, "signal", got)

	_, ok = c.Get("MSFT")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New[int]()
	c.Set("k", 42, 10*time.Millisecond)

	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "expired entries must not be returned")
}

func TestDelete(t *testing.T) {
	c := New[int]()
	c.Set("k", 1, time.Minute)
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCleanup(t *testing.T) {
	c := New[int]()
	c.Set("stale", 1, 5*time.Millisecond)
	c.Set("fresh", 2, time.Minute)

	time.Sleep(10 * time.Millisecond)
	c.Cleanup()

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			c.Set(key, i, time.Minute)
			c.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, c.Len())
}
