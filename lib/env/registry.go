package env

import (
	"fmt"
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/hashicorp/go-multierror"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

// Keys of the named values every deployment carries.
const (
	KeyLRelease     = "lrelease"
	KeyLReleaseDate = "lrelease_date"
	KeyCRelease     = "crelease"
	KeyCReleaseDate = "crelease_date"
	KeyReleaseIDs   = "release_ids"
	KeyPRSummary    = "pr_summary"
)

// Defaults maps a key to the value it is seeded with when the durable store
// does not know it yet.
type Defaults map[string]value.Value

// DefaultDefaults returns the defaults of the built-in keys.
func DefaultDefaults() Defaults {
	return Defaults{
		KeyLRelease:     value.String("6.0.5217"),
		KeyLReleaseDate: value.String("2024-06-16"),
		KeyCRelease:     value.String("6.0.5214"),
		KeyCReleaseDate: value.String("2024-06-16"),
		KeyReleaseIDs:   value.List(),
		KeyPRSummary:    value.String(""),
	}
}

var builtinKeys = []string{KeyLRelease, KeyLReleaseDate, KeyCRelease, KeyCReleaseDate, KeyReleaseIDs, KeyPRSummary}

func isBuiltin(key string) bool {
	for _, k := range builtinKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Registry holds the accessors of one process. It is built once at process
// start and handed to whatever needs configuration values.
type Registry struct {
	LRelease     *Env
	LReleaseDate *Env
	CRelease     *Env
	CReleaseDate *Env
	ReleaseIDs   *Env
	PRSummary    *Env

	store DurableStore
	cache cache.ICache
	envs  *xsync.MapOf[string, *Env]
}

// NewRegistry seeds the built-in keys and every additional key of defaults.
// Built-in keys missing from defaults use DefaultDefaults. All construction
// errors are collected and returned together.
func NewRegistry(store DurableStore, c cache.ICache, defaults Defaults) (*Registry, error) {
	r := &Registry{
		store: store,
		cache: c,
		envs:  xsync.NewMapOf[string, *Env](),
	}

	merged := DefaultDefaults()
	for k, v := range defaults {
		merged[k] = v
	}

	var errs *multierror.Error
	open := func(name string) *Env {
		e, err := r.Open(name, merged[name])
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		return e
	}

	r.LRelease = open(KeyLRelease)
	r.LReleaseDate = open(KeyLReleaseDate)
	r.CRelease = open(KeyCRelease)
	r.CReleaseDate = open(KeyCReleaseDate)
	r.ReleaseIDs = open(KeyReleaseIDs)
	r.PRSummary = open(KeyPRSummary)

	extra := make([]string, 0, len(merged))
	for k := range merged {
		if !isBuiltin(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		open(k)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open returns the accessor for name, creating and seeding it with def if the
// registry does not hold it yet. def is ignored for existing accessors.
func (r *Registry) Open(name string, def value.Value) (*Env, error) {
	if e, ok := r.envs.Load(name); ok {
		return e, nil
	}
	e, err := New(name, def, r.store, r.cache)
	if err != nil {
		return nil, fmt.Errorf("env %s: %w", name, err)
	}
	actual, _ := r.envs.LoadOrStore(name, e)
	return actual, nil
}

// Lookup returns the accessor for name if the registry holds it.
func (r *Registry) Lookup(name string) (*Env, bool) {
	return r.envs.Load(name)
}

// Names returns the keys of all accessors in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.envs.Size())
	r.envs.Range(func(name string, _ *Env) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Values reads every accessor of the registry.
func (r *Registry) Values() (map[string]value.Value, error) {
	values := make(map[string]value.Value, r.envs.Size())
	var errs *multierror.Error
	r.envs.Range(func(name string, e *Env) bool {
		v, err := e.Get()
		if err != nil {
			errs = multierror.Append(errs, err)
			return true
		}
		values[name] = v
		return true
	})
	return values, errs.ErrorOrNil()
}
