package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfair/internal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(size int) (*MemoryIdentityCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	return NewMemoryIdentityCacheWithClock(size, time.Hour, clock.Now), clock
}

func TestMemoryIdentityCache_TTL(t *testing.T) {
	c, clock := newTestCache(10)
	user := &model.User{ID: "u-1", Name: "alice", Role: model.RoleCompany}

	c.Set("alice", user, 3600*time.Second)

	clock.Advance(3599 * time.Second)
	got, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "u-1", got.ID)

	clock.Advance(time.Second)
	got, ok = c.Get("alice")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Zero(t, c.Len())
}

func TestMemoryIdentityCache_DeleteClear(t *testing.T) {
	c, _ := newTestCache(10)
	c.Set("a", &model.User{ID: "1"}, time.Minute)
	c.Set("b", &model.User{ID: "2"}, time.Minute)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMemoryIdentityCache_ReturnsCopies(t *testing.T) {
	c, _ := newTestCache(10)
	user := &model.User{ID: "u-1", Name: "alice"}
	c.Set("alice", user, time.Minute)

	user.Name = "mallory"
	got, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", got.Name)

	got.Name = "eve"
	again, _ := c.Get("alice")
	assert.Equal(t, "alice", again.Name)
}

func TestMemoryIdentityCache_NonPositiveTTL(t *testing.T) {
	c, _ := newTestCache(10)
	c.Set("alice", &model.User{ID: "u-1"}, time.Minute)
	c.Set("alice", &model.User{ID: "u-1"}, 0)

	_, ok := c.Get("alice")
	assert.False(t, ok)
}

func TestMemoryIdentityCache_Bounded(t *testing.T) {
	c, _ := newTestCache(2)
	c.Set("a", &model.User{ID: "1"}, time.Minute)
	c.Set("b", &model.User{ID: "2"}, time.Minute)
	c.Set("c", &model.User{ID: "3"}, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryIdentityCache_Concurrent(t *testing.T) {
	c, _ := newTestCache(64)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", i%4)
			for j := 0; j < 200; j++ {
				c.Set(key, &model.User{ID: key}, time.Minute)
				if got, ok := c.Get(key); ok {
					assert.Equal(t, key, got.ID)
				}
				if j%50 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()
}
