package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sys/unix"
)

func newRoot(t *testing.T) (string, *osfsWrapper) {
	t.Helper()
	dir := t.TempDir()
	return dir, &osfsWrapper{Filesystem: osfs.New(dir)}
}

func TestHashFileAndSameContent(t *testing.T) {
	dir, fsys := newRoot(t)
	writeFile(t, filepath.Join(dir, "a.ts"), "export const a = 1\n")
	writeFile(t, filepath.Join(dir, "b.ts"), "export const a = 1\n")
	writeFile(t, filepath.Join(dir, "c.ts"), "export const a = 2\n")
	writeFile(t, filepath.Join(dir, "d.ts"), "short")

	digest, err := HashFile(fsys, "a.ts")
	if err != nil {
		t.Fatal(err)
	}
	if digest.Size != int64(len("export const a = 1\n")) || len(digest.Sum) != 32 {
		t.Fatalf("unexpected digest: %+v", digest)
	}

	cases := []struct {
		a, b string
		want bool
	}{
		{"a.ts", "b.ts", true},
		{"a.ts", "c.ts", false},
		{"a.ts", "d.ts", false},
	}
	for _, tc := range cases {
		got, err := SameContent(fsys, tc.a, tc.b)
		if err != nil {
			t.Fatalf("SameContent(%s, %s): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("SameContent(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSameContentDirectoryNeverMatches(t *testing.T) {
	dir, fsys := newRoot(t)
	writeFile(t, filepath.Join(dir, "a.ts"), "x")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	same, err := SameContent(fsys, "a.ts", "sub")
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Fatal("expected file and directory to differ")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir, fsys := newRoot(t)
	src := filepath.Join(dir, "src.bin")
	content := "verified copy content"
	writeFile(t, src, content)
	if err := os.Chmod(src, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(fsys, "src.bin", "dst.bin"); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "dst.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
	info, err := os.Stat(filepath.Join(dir, "dst.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	_, fsys := newRoot(t)
	if err := CopyFileVerified(fsys, "nonexistent", "dst.bin"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMoveFileRenames(t *testing.T) {
	dir, fsys := newRoot(t)
	writeFile(t, filepath.Join(dir, "auth.ts"), "auth")
	if err := os.Mkdir(filepath.Join(dir, "server"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(fsys, "auth.ts", "server/auth.ts"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "auth.ts")); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, got %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "server", "auth.ts")); string(got) != "auth" {
		t.Fatalf("unexpected target content %q", got)
	}
}

func TestMoveFileFallsBackOnCrossDevice(t *testing.T) {
	dir, fsys := newRoot(t)
	writeFile(t, filepath.Join(dir, "db.ts"), "db")
	if err := os.Mkdir(filepath.Join(dir, "server"), 0o755); err != nil {
		t.Fatal(err)
	}
	fsys.renameErr = &os.LinkError{Op: "rename", Old: "db.ts", New: "server/db.ts", Err: unix.EXDEV}

	if err := MoveFile(fsys, "db.ts", "server/db.ts"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "db.ts")); !os.IsNotExist(err) {
		t.Fatalf("expected source to be removed after copy, got %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "server", "db.ts")); string(got) != "db" {
		t.Fatalf("unexpected target content %q", got)
	}
}

func TestMoveFilePropagatesOtherErrors(t *testing.T) {
	dir, fsys := newRoot(t)
	writeFile(t, filepath.Join(dir, "db.ts"), "db")
	fsys.renameErr = fmt.Errorf("rename: %w", os.ErrPermission)

	err := MoveFile(fsys, "db.ts", "server/db.ts")
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "db.ts")); err != nil {
		t.Fatalf("expected source to remain, got %v", err)
	}
}

func TestIsCrossDevice(t *testing.T) {
	if !IsCrossDevice(&os.LinkError{Op: "rename", Err: unix.EXDEV}) {
		t.Fatal("expected EXDEV to be detected")
	}
	if IsCrossDevice(os.ErrNotExist) {
		t.Fatal("did not expect ErrNotExist to be cross-device")
	}
}
