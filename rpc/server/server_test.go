package server

import (
	"encoding/json"
	"github.com/ValentinKolb/dEnv/lib/cache/lcache"
	"github.com/ValentinKolb/dEnv/lib/env"
	"github.com/ValentinKolb/dEnv/lib/filestore"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/ValentinKolb/dEnv/rpc/common"
	"github.com/spf13/afero"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *filestore.Store) {
	t.Helper()
	store := filestore.New(afero.NewMemMapFs(), "/srv/env.txt")
	reg, err := env.NewRegistry(store, lcache.New(), nil)
	if err != nil {
		t.Fatalf("NewRegistry() returned error: %v", err)
	}
	srv := httptest.NewServer(NewServer(common.Config{LogLevel: "debug"}, reg).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(data)
}

// TestGetValue tests reading single values
func TestGetValue(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodGet, srv.URL+"/env/lrelease", "")
	if code != http.StatusOK || body != `"6.0.5217"` {
		t.Errorf("GET /env/lrelease = %d %s", code, body)
	}

	code, body = do(t, http.MethodGet, srv.URL+"/env/release_ids", "")
	if code != http.StatusOK || body != `[]` {
		t.Errorf("GET /env/release_ids = %d %s", code, body)
	}

	if code, _ = do(t, http.MethodGet, srv.URL+"/env/unknown", ""); code != http.StatusNotFound {
		t.Errorf("GET /env/unknown = %d", code)
	}
}

// TestListValues tests reading the whole registry
func TestListValues(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := do(t, http.MethodGet, srv.URL+"/env", "")
	if code != http.StatusOK {
		t.Fatalf("GET /env = %d", code)
	}

	var values map[string]value.Value
	if err := json.Unmarshal([]byte(body), &values); err != nil {
		t.Fatalf("invalid response %s: %v", body, err)
	}
	if len(values) != 6 {
		t.Errorf("expected 6 values, got %d", len(values))
	}
	if !values["crelease_date"].Equal(value.String("2024-06-16")) {
		t.Errorf("crelease_date = %s", values["crelease_date"])
	}
}

// TestSetValue tests writing values through the API
func TestSetValue(t *testing.T) {
	srv, store := newTestServer(t)

	code, _ := do(t, http.MethodPut, srv.URL+"/env/release_ids", `["r1", "r2"]`)
	if code != http.StatusNoContent {
		t.Fatalf("PUT /env/release_ids = %d", code)
	}
	want := value.List(value.String("r1"), value.String("r2"))
	if v, _, _ := store.ReadOne("release_ids"); !v.Equal(want) {
		t.Errorf("file holds %s", v)
	}
	if _, body := do(t, http.MethodGet, srv.URL+"/env/release_ids", ""); body != `["r1","r2"]` {
		t.Errorf("GET after PUT = %s", body)
	}

	if code, _ = do(t, http.MethodPut, srv.URL+"/env/release_ids", `not json`); code != http.StatusBadRequest {
		t.Errorf("PUT with invalid body = %d", code)
	}
	if code, _ = do(t, http.MethodPut, srv.URL+"/env/unknown", `1`); code != http.StatusNotFound {
		t.Errorf("PUT /env/unknown = %d", code)
	}
}

// TestMetrics tests the Prometheus endpoint
func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, http.MethodGet, srv.URL+"/env/lrelease", "")

	code, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	if code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", code)
	}
	for _, name := range []string{"denv_cache_hits_total", "denv_file_reads_total", "denv_file_writes_total"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output misses %s", name)
		}
	}
}
