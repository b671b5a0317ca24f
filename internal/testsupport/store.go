package testsupport

import (
	"testing"

	"splicer/internal/config"
	"splicer/internal/render"
)

// MustOpenStore opens a render.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *render.Store {
	t.Helper()

	store, err := render.Open(cfg)
	if err != nil {
		t.Fatalf("render.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
