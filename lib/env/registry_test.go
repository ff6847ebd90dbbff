package env

import (
	"errors"
	"github.com/ValentinKolb/dEnv/lib/cache/lcache"
	"github.com/ValentinKolb/dEnv/lib/filestore"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"reflect"
	"strings"
	"testing"
)

// TestNewRegistry tests that all built-in keys are seeded with their defaults
func TestNewRegistry(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := filestore.New(fs, testPath)

	reg, err := NewRegistry(store, lcache.New(), nil)
	if err != nil {
		t.Fatalf("NewRegistry() returned error: %v", err)
	}

	fields := map[string]*Env{
		KeyLRelease:     reg.LRelease,
		KeyLReleaseDate: reg.LReleaseDate,
		KeyCRelease:     reg.CRelease,
		KeyCReleaseDate: reg.CReleaseDate,
		KeyReleaseIDs:   reg.ReleaseIDs,
		KeyPRSummary:    reg.PRSummary,
	}
	defaults := DefaultDefaults()
	for key, e := range fields {
		if e == nil {
			t.Errorf("field for %s is nil", key)
			continue
		}
		if e.Name() != key {
			t.Errorf("field for %s has name %s", key, e.Name())
		}
		if v := mustGet(t, e); !v.Equal(defaults[key]) {
			t.Errorf("%s = %s, want %s", key, v, defaults[key])
		}
		if v, ok, _ := store.ReadOne(key); !ok || !v.Equal(defaults[key]) {
			t.Errorf("file holds %s for %s (found %v)", v, key, ok)
		}
	}

	want := []string{KeyCRelease, KeyCReleaseDate, KeyLRelease, KeyLReleaseDate, KeyPRSummary, KeyReleaseIDs}
	if names := reg.Names(); !reflect.DeepEqual(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

// TestRegistryCustomDefaults tests overriding defaults and adding extra keys
func TestRegistryCustomDefaults(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), testPath)

	reg, err := NewRegistry(store, lcache.New(), Defaults{
		KeyLRelease: value.String("7.0.0"),
		"feature":   value.Bool(true),
	})
	if err != nil {
		t.Fatal(err)
	}

	if v := mustGet(t, reg.LRelease); !v.Equal(value.String("7.0.0")) {
		t.Errorf("lrelease = %s", v)
	}
	if v := mustGet(t, reg.CRelease); !v.Equal(value.String("6.0.5214")) {
		t.Errorf("crelease = %s", v)
	}
	feature, ok := reg.Lookup("feature")
	if !ok {
		t.Fatal("extra key missing")
	}
	if v := mustGet(t, feature); !v.Equal(value.Bool(true)) {
		t.Errorf("feature = %s", v)
	}
}

// TestRegistryOpen tests opening additional keys at runtime
func TestRegistryOpen(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), testPath)
	reg, err := NewRegistry(store, lcache.New(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := reg.Lookup("build"); ok {
		t.Fatal("unknown key found")
	}
	e, err := reg.Open("build", value.Number(1))
	if err != nil {
		t.Fatal(err)
	}
	again, err := reg.Open("build", value.Number(2))
	if err != nil {
		t.Fatal(err)
	}
	if e != again {
		t.Error("Open() of an existing key must return the same accessor")
	}
	if v := mustGet(t, again); !v.Equal(value.Number(1)) {
		t.Errorf("build = %s, the second default must be ignored", v)
	}

	values, err := reg.Values()
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 7 || !values["build"].Equal(value.Number(1)) {
		t.Errorf("Values() = %v", values)
	}
}

// TestRegistryRestart tests that a second process recovers values after the cache is lost
func TestRegistryRestart(t *testing.T) {
	fs := afero.NewMemMapFs()
	sharedCache := lcache.New()

	first, err := NewRegistry(filestore.New(fs, testPath), sharedCache, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewRegistry(filestore.New(fs, testPath), sharedCache, nil)
	if err != nil {
		t.Fatal(err)
	}

	ids := value.List(value.String("r1"), value.String("r2"))
	mustSet(t, first.ReleaseIDs, ids)
	mustSet(t, first.LRelease, value.String("6.0.6000"))

	// the other worker sees the change through the shared cache
	if v := mustGet(t, second.ReleaseIDs); !v.Equal(ids) {
		t.Errorf("second worker sees %s", v)
	}

	// restart with an empty cache
	restarted, err := NewRegistry(filestore.New(fs, testPath), lcache.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if v := mustGet(t, restarted.ReleaseIDs); !v.Equal(ids) {
		t.Errorf("restarted worker sees %s", v)
	}
	if v := mustGet(t, restarted.LRelease); !v.Equal(value.String("6.0.6000")) {
		t.Errorf("restarted worker sees lrelease %s", v)
	}
}

// TestRegistryErrors tests that construction errors of all keys are collected
func TestRegistryErrors(t *testing.T) {
	boom := errors.New("read-only filesystem")
	_, err := NewRegistry(&brokenStore{err: boom}, lcache.New(), nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a multierror, got %T", err)
	}
	if len(merr.Errors) != 6 {
		t.Errorf("expected 6 errors, got %d", len(merr.Errors))
	}
	if !errors.Is(err, boom) {
		t.Error("errors should wrap the store error")
	}
	if !strings.Contains(err.Error(), KeyPRSummary) {
		t.Errorf("error should name the failing key: %v", err)
	}
}

// TestRegistryErrorsOncePerKey tests that a failing built-in key is not opened a second time
func TestRegistryErrorsOncePerKey(t *testing.T) {
	boom := errors.New("read-only filesystem")
	_, err := NewRegistry(&brokenStore{err: boom}, lcache.New(), Defaults{
		"build_number": value.Number(1),
	})

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a multierror, got %T", err)
	}
	if len(merr.Errors) != 7 {
		t.Errorf("expected 7 errors, got %d", len(merr.Errors))
	}

	for _, key := range append(append([]string{}, builtinKeys...), "build_number") {
		n := 0
		for _, e := range merr.Errors {
			if strings.HasPrefix(e.Error(), "env "+key+":") {
				n++
			}
		}
		if n != 1 {
			t.Errorf("key %s reported %d times", key, n)
		}
	}
}
