package adapter

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/zennajjames/TheVillage/internal/infrastructure/cache/port"
	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
)

type memCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

type countingDirectory struct {
	mu      sync.Mutex
	users   map[string]directory.User
	lookups int
}

func (d *countingDirectory) GetUser(_ context.Context, id string) (*directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	u, ok := d.users[id]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (d *countingDirectory) GetUsers(_ context.Context, ids []string) (map[string]directory.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]directory.User, len(ids))
	for _, id := range ids {
		d.lookups++
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d *countingDirectory) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lookups
}

func cachedFixture(c cache.Cache) (*CachedDirectory, *countingDirectory) {
	source := &countingDirectory{users: map[string]directory.User{
		"alice": {ID: "alice", Email: "alice@example.com", FirstName: "Alice", EmailNotifications: true, NotifyOnMessages: true},
		"bob":   {ID: "bob", Email: "bob@example.com", FirstName: "Bob"},
	}}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCachedDirectory(source, c, time.Minute, log), source
}

func TestGetUserPopulatesCache(t *testing.T) {
	c := newMemCache()
	dir, source := cachedFixture(c)

	u, err := dir.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.ID)
	assert.Equal(t, 1, source.count())

	// Second read is served from the cache and must be field-complete:
	// email and notification preferences gate the send-message fan-out.
	u2, err := dir.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, *u, *u2)
	assert.Equal(t, "alice@example.com", u2.Email)
	assert.True(t, u2.EmailNotifications)
	assert.True(t, u2.NotifyOnMessages)
	assert.Equal(t, 1, source.count())
}

func TestGetUserUnknown(t *testing.T) {
	dir, _ := cachedFixture(newMemCache())

	_, err := dir.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, directory.ErrUserNotFound)
}

func TestGetUserSurvivesCacheFailure(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("connection refused")
	c.setErr = errors.New("connection refused")
	dir, source := cachedFixture(c)

	u, err := dir.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.ID)
	assert.Equal(t, 1, source.count())
}

func TestGetUsersSkipsUnknown(t *testing.T) {
	dir, _ := cachedFixture(newMemCache())

	users, err := dir.GetUsers(context.Background(), []string{"alice", "nobody", "bob"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Contains(t, users, "alice")
	assert.Contains(t, users, "bob")
}
