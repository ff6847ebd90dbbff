// Package ncache provides the no-op shared cache of degraded mode: nothing is
// ever stored, so every read falls through to the durable store.
package ncache

import (
	"github.com/ValentinKolb/dEnv/lib/cache"
)

type noopCache struct{}

// New returns the no-op cache.
func New() cache.ICache {
	return noopCache{}
}

func (noopCache) Get(string) (string, bool, error)           { return "", false, nil }
func (noopCache) Set(string, string, cache.SetOptions) error { return nil }
func (noopCache) Delete(string) error                        { return nil }
func (noopCache) Close() error                               { return nil }
