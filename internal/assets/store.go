package assets

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store copies a file that an external downloader fetched for ref into
// the cache, so later resolutions find it. The copy is written next to its
// final name, verified by size and SHA-256, then renamed into place.
func (r CacheResolver) Store(ref, file string) (string, error) {
	if r.Dir == "" {
		return "", fmt.Errorf("cache directory not configured")
	}
	if !IsRemote(ref) {
		return "", fmt.Errorf("%q is not a remote reference", ref)
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	dst := CachePath(r.Dir, ref)
	tmp := filepath.Join(r.Dir, "."+filepath.Base(dst)+".tmp")
	if err := copyVerified(file, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("move into cache: %w", err)
	}
	return dst, nil
}

func copyVerified(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHash, dstHash := sha256.New(), sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHash), io.TeeReader(in, srcHash))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if written != info.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}
	if !bytes.Equal(srcHash.Sum(nil), dstHash.Sum(nil)) {
		return fmt.Errorf("copy hash mismatch")
	}
	return nil
}
