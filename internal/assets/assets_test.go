package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splicer/internal/validation"
)

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/a.mp4": true,
		"http://cdn.test/x.png":     true,
		"ftp://example.com/a.mp4":   false,
		"clip.mp4":                  false,
		"/abs/clip.mp4":             false,
		"":                          false,
		"https:///nohost":           false,
	}
	for ref, want := range tests {
		if got := IsRemote(ref); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestLocalResolver(t *testing.T) {
	base := t.TempDir()
	r := LocalResolver{Base: base}
	ctx := context.Background()

	got, err := r.Resolve(ctx, "media/clip.mp4")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(base, "media", "clip.mp4") {
		t.Fatalf("unexpected path %s", got)
	}
	for _, ref := range []string{"", "https://example.com/a.mp4"} {
		got, err := r.Resolve(ctx, ref)
		if err != nil || got != ref {
			t.Fatalf("Resolve(%q) = %q, %v; want passthrough", ref, got, err)
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		got, err := r.Resolve(ctx, "~/clip.mp4")
		if err != nil || got != filepath.Join(home, "clip.mp4") {
			t.Fatalf("tilde expansion = %q, %v", got, err)
		}
	}
}

func TestLocalResolverMustExist(t *testing.T) {
	base := t.TempDir()
	r := LocalResolver{Base: base, MustExist: true}
	_, err := r.Resolve(context.Background(), "missing.mp4")
	if !errors.Is(err, validation.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "there.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(context.Background(), "there.mp4"); err != nil {
		t.Fatalf("existing file: %v", err)
	}
}

func TestResolveHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (LocalResolver{}).Resolve(ctx, "a.mp4"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCacheResolverAndStore(t *testing.T) {
	dir := t.TempDir()
	r := CacheResolver{Dir: filepath.Join(dir, "cache")}
	ref := "https://cdn.example.com/photos/Beach.JPG?size=large"
	ctx := context.Background()

	got, err := r.Resolve(ctx, ref)
	if err != nil || got != ref {
		t.Fatalf("cache miss should pass through, got %q, %v", got, err)
	}

	downloaded := filepath.Join(dir, "download.tmp")
	if err := os.WriteFile(downloaded, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	stored, err := r.Store(ref, downloaded)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(stored, ".jpg") || stored != CachePath(r.Dir, ref) {
		t.Fatalf("unexpected cache path %s", stored)
	}
	got, err = r.Resolve(ctx, ref)
	if err != nil || got != stored {
		t.Fatalf("cache hit = %q, %v; want %s", got, err, stored)
	}
	data, err := os.ReadFile(stored)
	if err != nil || string(data) != "jpeg bytes" {
		t.Fatalf("cached content = %q, %v", data, err)
	}
}

func TestStoreRejectsLocalRefAndMissingFile(t *testing.T) {
	r := CacheResolver{Dir: t.TempDir()}
	if _, err := r.Store("clip.mp4", "x"); err == nil {
		t.Fatal("expected error for local reference")
	}
	if _, err := r.Store("https://example.com/a.mp4", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing download")
	}
	if _, err := (CacheResolver{}).Store("https://example.com/a.mp4", "x"); err == nil {
		t.Fatal("expected error without cache dir")
	}
}

func TestCacheResolverDelegatesLocal(t *testing.T) {
	called := false
	r := CacheResolver{Local: ResolverFunc(func(_ context.Context, ref string) (string, error) {
		called = true
		return "/resolved/" + ref, nil
	})}
	got, err := r.Resolve(context.Background(), "a.mp4")
	if err != nil || !called || got != "/resolved/a.mp4" {
		t.Fatalf("got %q, %v, called=%v", got, err, called)
	}
}
