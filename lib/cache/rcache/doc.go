// Package rcache implements cache.ICache on top of redis, using
// github.com/redis/go-redis/v9. It is the shared cache of a deployment with
// several worker processes.
//
// Operations map one to one onto redis commands:
//
//	Get    -> GET key
//	Set    -> SET key value [EX seconds]   (SetOptions.NotExists: SET key value NX [EX seconds])
//	Delete -> DEL key
//
// A missing key (redis.Nil) is reported as not loaded without an error. Every
// other failure, including an unreachable server, is returned as a
// *cache.Error with code RetCUnavailable so callers can fall back to the
// durable store. Each operation is bounded by the configured timeout.
//
// Usage Example:
//
//	c := rcache.New(rcache.Options{Addr: "localhost:6379", Prefix: "denv:"})
//	defer c.Close()
//
//	_ = c.Set("lrelease", `"6.0.5217"`, cache.SetOptions{})
//	raw, ok, err := c.Get("lrelease")
package rcache
