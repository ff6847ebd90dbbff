// Package env implements the value accessor of dEnv: a named configuration
// value kept consistent between a shared cache (fast, visible to all worker
// processes, not durable) and a durable store (a flat file surviving
// restarts).
//
// Reads prefer the shared cache and fall back to the durable store when the
// cache does not hold a non-null value, is unreachable or holds something that
// does not decode. The precedence is exposed as the pure function Resolve.
//
// Writes are free when the value does not change. A changed value is always
// pushed to the shared cache (no expiry) and written to the durable store only
// if the file does not already hold it. Null and the string "None" are stored
// in the file as the empty string, so a cleared value and an intentionally
// empty string cannot be told apart after the cache is lost.
//
// Construction seeds the value: the file wins over the default, and a default
// that the file does not know yet is written to both stores.
//
// There is no locking. The shared cache is the coordination point between
// processes; concurrent writers of the file race and the last one wins.
//
// Usage Example:
//
//	store := filestore.NewOsStore("env.txt")
//	reg, err := env.NewRegistry(store, rcache.New(rcache.Options{Addr: "localhost:6379"}), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	release, _ := reg.LRelease.Get()
//	_ = reg.ReleaseIDs.Set(value.List(value.String("r1")))
package env
