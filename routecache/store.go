package routecache

import (
	"fmt"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
)

// Store persists encoded reachability maps keyed by origin stop and
// search options.
type Store interface {
	Get(origin model.StopID, optionsKey string) ([]byte, bool, error)
	Put(origin model.StopID, optionsKey string, blob []byte) error
	Close() error
}

// OptionsKey derives the cache key component for a set of routing
// options.
func OptionsKey(opts routing.Options) string {
	return fmt.Sprintf("%d:%d:%d:%d:%t",
		opts.StartTime, opts.Date, opts.SearchTime,
		opts.MinTransferTime, opts.OverrideMinTransferTime)
}

// Cache serves encoded reachability maps, computing and storing them
// on miss.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// Reachability returns the encoded reachability map from origin
// under opts, running the search only on a cache miss.
func (c *Cache) Reachability(tt *routing.Timetable, origin model.StopID, opts routing.Options) ([]byte, error) {
	key := OptionsKey(opts)

	blob, ok, err := c.store.Get(origin, key)
	if err != nil {
		return nil, fmt.Errorf("reading route cache: %w", err)
	}
	if ok {
		return blob, nil
	}

	reach := tt.ShortestPaths(origin, opts)
	blob, err = Marshal(reach)
	if err != nil {
		return nil, fmt.Errorf("encoding reachability map: %w", err)
	}

	if err := c.store.Put(origin, key, blob); err != nil {
		return nil, fmt.Errorf("writing route cache: %w", err)
	}
	return blob, nil
}
