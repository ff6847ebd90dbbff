package ncache

import (
	"github.com/ValentinKolb/dEnv/lib/cache"
	"testing"
)

// TestNoop tests that nothing is ever stored and nothing ever fails
func TestNoop(t *testing.T) {
	c := New()

	if err := c.Set("k", "v", cache.SetOptions{}); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Errorf("Get() = %v, %v", ok, err)
	}
	if err := c.Delete("k"); err != nil {
		t.Errorf("Delete() returned error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}
