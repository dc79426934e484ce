package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	cache "github.com/zennajjames/TheVillage/internal/infrastructure/cache/port"
	directory "github.com/zennajjames/TheVillage/internal/pkg/directory/port"
)

const userCacheKeyPrefix = "directory:user:"

// cachedUser is the cache wire form of a directory.User. The domain struct
// hides email and notification preferences from API responses via json:"-",
// so it cannot be round-tripped through the cache directly; this DTO carries
// every field.
type cachedUser struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	ProfilePicture     *string `json:"profilePicture"`
	EmailNotifications bool    `json:"emailNotifications"`
	NotifyOnMessages   bool    `json:"notifyOnMessages"`
}

func toCachedUser(u directory.User) cachedUser {
	return cachedUser{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		ProfilePicture:     u.ProfilePicture,
		EmailNotifications: u.EmailNotifications,
		NotifyOnMessages:   u.NotifyOnMessages,
	}
}

func (c cachedUser) toUser() directory.User {
	return directory.User{
		ID:                 c.ID,
		Email:              c.Email,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		ProfilePicture:     c.ProfilePicture,
		EmailNotifications: c.EmailNotifications,
		NotifyOnMessages:   c.NotifyOnMessages,
	}
}

// CachedDirectory is a read-through cache in front of another Directory.
// Profile lookups sit on the send-message path (notification preferences),
// so they are worth keeping hot. Cache failures fall through to the source;
// a broken cache must never make the directory unavailable.
type CachedDirectory struct {
	source directory.Directory
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Logger
}

func NewCachedDirectory(source directory.Directory, c cache.Cache, ttl time.Duration, log *logrus.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedDirectory{source: source, cache: c, ttl: ttl, log: log}
}

// Ensure interface compliance at compile time
var _ directory.Directory = (*CachedDirectory)(nil)

func (d *CachedDirectory) GetUser(ctx context.Context, id string) (*directory.User, error) {
	key := userCacheKeyPrefix + id

	if raw, err := d.cache.Get(ctx, key); err == nil {
		var cu cachedUser
		if err := json.Unmarshal([]byte(raw), &cu); err == nil {
			u := cu.toUser()
			return &u, nil
		}
		// Unparseable entry: treat as a miss and repopulate below.
	} else if !errors.Is(err, cache.ErrMiss) && d.log != nil {
		d.log.WithError(err).WithField("user_id", id).Warn("directory cache read failed")
	}

	u, err := d.source.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(toCachedUser(*u)); err == nil {
		if err := d.cache.Set(ctx, key, string(raw), d.ttl); err != nil && d.log != nil {
			d.log.WithError(err).WithField("user_id", id).Warn("directory cache write failed")
		}
	}
	return u, nil
}

func (d *CachedDirectory) GetUsers(ctx context.Context, ids []string) (map[string]directory.User, error) {
	users := make(map[string]directory.User, len(ids))
	var misses []string
	for _, id := range ids {
		u, err := d.GetUser(ctx, id)
		if errors.Is(err, directory.ErrUserNotFound) {
			continue
		}
		if err != nil {
			misses = append(misses, id)
			continue
		}
		users[u.ID] = *u
	}
	if len(misses) == 0 {
		return users, nil
	}

	// Individual lookups failed on transport; fall back to one batch read
	// against the source for whatever is still missing.
	rest, err := d.source.GetUsers(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, u := range rest {
		users[id] = u
	}
	return users, nil
}
