package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"splicer/internal/validation"
)

// Resolver maps a source reference (a local path or a remote URL) to the
// path that is written literally after -i.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, ref string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, ref string) (string, error) {
	return f(ctx, ref)
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LocalResolver expands "~" and makes relative paths absolute against Base
// (the working directory when empty). Remote and empty references pass
// through unchanged. With MustExist set, a missing file is an ErrNotFound
// error.
type LocalResolver struct {
	Base      string
	MustExist bool
}

// Resolve implements Resolver.
func (r LocalResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(ref) == "" || IsRemote(ref) {
		return ref, nil
	}
	p, err := expand(ref, r.Base)
	if err != nil {
		return "", validation.Wrap(validation.ErrConfiguration, "assets", "resolve", ref, err)
	}
	if r.MustExist {
		if _, err := os.Stat(p); err != nil {
			return "", validation.Wrap(validation.ErrNotFound, "assets", "resolve", p, err)
		}
	}
	return p, nil
}

func expand(ref, base string) (string, error) {
	if strings.HasPrefix(ref, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		switch {
		case ref == "~":
			ref = home
		case ref[1] == '/' || ref[1] == '\\':
			ref = filepath.Join(home, ref[2:])
		}
	}
	if !filepath.IsAbs(ref) && base != "" {
		ref = filepath.Join(base, ref)
	}
	abs, err := filepath.Abs(filepath.Clean(ref))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", ref, err)
	}
	return abs, nil
}

// CacheResolver serves remote references from a content-addressed cache
// directory. A URL whose cache entry is missing passes through unchanged,
// leaving the fetch to FFmpeg. Local references go to Local.
type CacheResolver struct {
	Dir   string
	Local Resolver
}

// Resolve implements Resolver.
func (r CacheResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if !IsRemote(ref) {
		local := r.Local
		if local == nil {
			local = LocalResolver{}
		}
		return local.Resolve(ctx, ref)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.Dir == "" {
		return ref, nil
	}
	p := CachePath(r.Dir, ref)
	if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
		return p, nil
	}
	return ref, nil
}

// CachePath returns the cache location for a remote reference: the hex
// SHA-256 of the URL followed by the extension of its path.
func CachePath(dir, ref string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(ref)))
	name := hex.EncodeToString(sum[:])
	if u, err := url.Parse(ref); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 8 {
			name += strings.ToLower(ext)
		}
	}
	return filepath.Join(dir, name)
}
