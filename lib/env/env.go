package env

import (
	"fmt"
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/ValentinKolb/dEnv/lib/telemetry"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("env")

// DurableStore is the file backed store an Env falls back to.
// It is implemented by *filestore.Store.
type DurableStore interface {
	EnsureExists() error
	ReadOne(key string) (value.Value, bool, error)
	WriteOne(key string, v value.Value) error
}

// Env is a view of one named value over the shared cache and the durable
// store. It owns neither of them.
type Env struct {
	name  string
	store DurableStore
	cache cache.ICache
}

// New creates the accessor for name and seeds it. The value stored in the
// file wins over def; def is used when the file does not hold the key (or
// holds null). The initial value is committed through Set.
func New(name string, def value.Value, store DurableStore, c cache.ICache) (*Env, error) {
	e := &Env{
		name:  name,
		store: store,
		cache: c,
	}

	if err := store.EnsureExists(); err != nil {
		return nil, err
	}

	inFile, err := e.lookupFile()
	if err != nil {
		return nil, err
	}

	initial := def
	if inFile.usable() {
		initial = inFile.Value
		if !initial.Equal(def) {
			// Set would see the file value through the read path and do nothing
			if err := e.warmCache(initial); err != nil {
				return nil, err
			}
		}
	}

	if err := e.Set(initial); err != nil {
		return nil, err
	}
	Logger.Debugf("seeded %s", e)
	return e, nil
}

// Name returns the key of the value.
func (e *Env) Name() string { return e.name }

// Get returns the current value. The shared cache is preferred; if it does
// not hold a non-null value (or is unreachable) the durable store answers.
// A key held by neither store yields null. Only durable store I/O errors are
// returned.
func (e *Env) Get() (value.Value, error) {
	cached := e.lookupCache()
	if cached.usable() {
		telemetry.CacheHits.Inc()
		return cached.Value, nil
	}
	telemetry.CacheMisses.Inc()

	file, err := e.lookupFile()
	if err != nil {
		return value.Null(), err
	}
	return Resolve(cached, file), nil
}

// Set stores v. Nothing happens if v equals the current value as seen by Get.
// Otherwise v is pushed to the shared cache and, unless the file already
// holds v, written to the durable store. Null and the string "None" are
// written to the file as the empty string.
func (e *Env) Set(v value.Value) error {
	raw, err := v.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.name, err)
	}

	current, err := e.Get()
	if err != nil {
		return err
	}
	if v.Equal(current) {
		telemetry.WriteSuppressed(telemetry.ReasonUnchanged)
		return nil
	}

	e.pushToCache(string(raw))

	inFile, err := e.lookupFile()
	if err != nil {
		return err
	}
	if v.Equal(inFile.Value) {
		telemetry.WriteSuppressed(telemetry.ReasonFileUnchanged)
		return nil
	}

	if err := e.store.WriteOne(e.name, normalizeForFile(v)); err != nil {
		return fmt.Errorf("write %s: %w", e.name, err)
	}
	return nil
}

// String returns a representation like Env(lrelease, "6.0.5217").
func (e *Env) String() string {
	v, err := e.Get()
	if err != nil {
		return fmt.Sprintf("Env(%s, <%v>)", e.name, err)
	}
	return fmt.Sprintf("Env(%s, %s)", e.name, v)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// lookupCache reads the key from the shared cache. Failures count as a miss.
func (e *Env) lookupCache() Lookup {
	raw, loaded, err := e.cache.Get(e.name)
	if err != nil {
		telemetry.CacheErrors.Inc()
		Logger.Debugf("cache read of %s failed, using env file: %v", e.name, err)
	}
	return decodeCached(raw, loaded, err)
}

// lookupFile reads the key from the durable store. An absent key yields a
// Lookup holding null.
func (e *Env) lookupFile() (Lookup, error) {
	v, ok, err := e.store.ReadOne(e.name)
	if err != nil {
		return Lookup{}, fmt.Errorf("read %s: %w", e.name, err)
	}
	if !ok {
		return Lookup{Value: value.Null()}, nil
	}
	return Lookup{Value: v, Found: true}, nil
}

// pushToCache overwrites the cached value without expiry. A failing cache is
// logged and otherwise ignored.
func (e *Env) pushToCache(raw string) {
	if err := e.cache.Set(e.name, raw, cache.SetOptions{}); err != nil {
		telemetry.CacheErrors.Inc()
		Logger.Warningf("cache write of %s failed: %v", e.name, err)
	}
}

// warmCache pushes v to the shared cache unless it already holds v.
func (e *Env) warmCache(v value.Value) error {
	if cached := e.lookupCache(); cached.usable() && cached.Value.Equal(v) {
		return nil
	}
	raw, err := v.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", e.name, err)
	}
	e.pushToCache(string(raw))
	return nil
}

// normalizeForFile maps null and the string "None" to the empty string. The
// file format has no way to say "explicitly cleared".
func normalizeForFile(v value.Value) value.Value {
	if v.IsNull() {
		return value.String("")
	}
	if s, ok := v.Str(); ok && s == "None" {
		return value.String("")
	}
	return v
}
