package env

import (
	"github.com/ValentinKolb/dEnv/lib/value"
)

// Lookup is the outcome of asking one backing store for a key.
type Lookup struct {
	Value value.Value
	Found bool
}

// usable reports whether the lookup carries a value that may answer a read.
// A stored null counts as nothing stored.
func (l Lookup) usable() bool {
	return l.Found && !l.Value.IsNull()
}

// Resolve applies the read precedence: a usable cache result wins, otherwise
// the file result is returned. Neither store holding the key yields null.
func Resolve(cached, file Lookup) value.Value {
	if cached.usable() {
		return cached.Value
	}
	if file.Found {
		return file.Value
	}
	return value.Null()
}

// decodeCached turns the raw result of a cache read into a Lookup. Cache
// errors and undecodable payloads are reported as not found.
func decodeCached(raw string, loaded bool, err error) Lookup {
	if err != nil || !loaded {
		return Lookup{}
	}
	v, decErr := value.DecodeString(raw)
	if decErr != nil {
		return Lookup{}
	}
	return Lookup{Value: v, Found: true}
}
