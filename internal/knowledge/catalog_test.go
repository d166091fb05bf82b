package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestRESTCatalogLookup verifies the lookup endpoint and query encoding.
func TestRESTCatalogLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/exercises/lookup" {
			t.Errorf("path = %q, want /api/v1/exercises/lookup", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "Bench Press" {
			t.Errorf("name = %q, want %q", got, "Bench Press")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Bench Press","primaryMuscles":["chest"],"equipment":["barbell","bench"]}`))
	}))
	defer srv.Close()

	ex, err := NewRESTCatalog(srv.URL).Lookup(context.Background(), "Bench Press")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if ex == nil || ex.Name != "Bench Press" {
		t.Fatalf("Lookup() = %+v, want Bench Press", ex)
	}
	if !ex.UsesEquipment("barbell") {
		t.Error("UsesEquipment(barbell) = false, want true")
	}
}

// TestRESTCatalogLookupMiss verifies a 404 means no entry, not an error.
func TestRESTCatalogLookupMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ex, err := NewRESTCatalog(srv.URL).Lookup(context.Background(), "Mystery Move")
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil on 404", err)
	}
	if ex != nil {
		t.Errorf("Lookup() = %+v, want nil on 404", ex)
	}
}

// TestRESTCatalogServerError verifies non-404 failures surface as errors.
func TestRESTCatalogServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewRESTCatalog(srv.URL).Lookup(context.Background(), "Squat"); err == nil {
		t.Error("Lookup() error = nil, want error on 500")
	}
}

// TestRESTCatalogByEquipment verifies the pool query joins equipment with
// commas.
func TestRESTCatalogByEquipment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("equipment"); got != "dumbbell,band" {
			t.Errorf("equipment = %q, want %q", got, "dumbbell,band")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Goblet Squat","primaryMuscles":["quads"],"equipment":["dumbbell"]}]`))
	}))
	defer srv.Close()

	pool, err := NewRESTCatalog(srv.URL).ByEquipment(context.Background(), []string{"dumbbell", "band"})
	if err != nil {
		t.Fatalf("ByEquipment() error = %v", err)
	}
	if len(pool) != 1 || pool[0].Name != "Goblet Squat" {
		t.Errorf("ByEquipment() = %+v, want one Goblet Squat entry", pool)
	}
}

// TestCacheRoundTrip verifies lookup results survive a Put/Get cycle and
// keys are case-insensitive.
func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get("Squat"); err != nil || ok {
		t.Fatalf("Get() before Put = ok %v, err %v, want miss", ok, err)
	}

	put := &CatalogExercise{Name: "Squat", PrimaryMuscles: []string{"quads"}, Equipment: []string{"barbell"}}
	if err := cache.Put("Squat", put); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := cache.Get("squat")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() = miss after Put")
	}
	if got.Name != "Squat" || len(got.Equipment) != 1 || got.Equipment[0] != "barbell" {
		t.Errorf("Get() = %+v, want %+v", got, put)
	}
}
