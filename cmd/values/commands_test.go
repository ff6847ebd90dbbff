package values

import (
	"github.com/ValentinKolb/dEnv/lib/value"
	"testing"
)

// TestParseArg tests that JSON arguments are decoded and everything else is kept as a string
func TestParseArg(t *testing.T) {
	cases := []struct {
		arg  string
		want value.Value
	}{
		{`"6.0.5217"`, value.String("6.0.5217")},
		{`6.0.5217`, value.String("6.0.5217")},
		{`["a","b"]`, value.List(value.String("a"), value.String("b"))},
		{`42`, value.Number(42)},
		{`true`, value.Bool(true)},
		{`null`, value.Null()},
		{`hello world`, value.String("hello world")},
		{``, value.String("")},
	}
	for _, c := range cases {
		if got := ParseArg(c.arg); !got.Equal(c.want) {
			t.Errorf("ParseArg(%q) = %s, want %s", c.arg, got, c.want)
		}
	}
}
